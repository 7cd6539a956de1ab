package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRecord tracks on-hand and reserved counts per variant.
type InventoryRecord struct {
	VariantID   uuid.UUID  `gorm:"column:variant_id;type:uuid;primaryKey"`
	Quantity    int        `gorm:"column:quantity;not null;default:0"`
	ReservedQty int        `gorm:"column:reserved_qty;not null;default:0"`
	MinimumQty  int        `gorm:"column:minimum_qty;not null;default:0"`
	BatchNumber *string    `gorm:"column:batch_number"`
	ExpiryDate  *time.Time `gorm:"column:expiry_date"`
	UpdatedBy   *uuid.UUID `gorm:"column:updated_by;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// Sellable returns the count still available to new orders.
func (r InventoryRecord) Sellable() int {
	return r.Quantity - r.ReservedQty
}
