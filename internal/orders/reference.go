package orders

import (
	"fmt"
	"math/rand"
	"time"
)

// NewOrderReference builds a customer-facing order reference from the
// current epoch milliseconds plus ten random digits. Uniqueness is
// enforced by the database index; the random suffix makes collisions
// within one millisecond vanishingly unlikely.
func NewOrderReference() string {
	return fmt.Sprintf("%d-%010d", time.Now().UnixMilli(), rand.Int63n(10_000_000_000))
}
