package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storenest/storenest-backend/pkg/enums"
)

// OrderPlacedEvent signals a successfully placed customer order.
type OrderPlacedEvent struct {
	OrderID        uuid.UUID       `json:"order_id"`
	OrderReference string          `json:"order_reference"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	ItemCount      int             `json:"item_count"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// OrderStatusChangedEvent is emitted on every fulfillment transition.
type OrderStatusChangedEvent struct {
	OrderID        uuid.UUID         `json:"order_id"`
	OrderReference string            `json:"order_reference"`
	From           enums.OrderStatus `json:"from"`
	To             enums.OrderStatus `json:"to"`
}

// OrderCanceledEvent is emitted whenever a pre-shipment order is cancelled.
type OrderCanceledEvent struct {
	OrderID        uuid.UUID `json:"order_id"`
	OrderReference string    `json:"order_reference"`
	CustomerID     uuid.UUID `json:"customer_id"`
	CancelledAt    time.Time `json:"cancelled_at"`
	Reason         string    `json:"reason,omitempty"`
}
