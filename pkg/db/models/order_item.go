package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem captures the priced snapshot of one variant at placement
// time. Later catalog edits never change it.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	VariantID  uuid.UUID       `gorm:"column:variant_id;type:uuid;not null"`
	SKU        string          `gorm:"column:sku;not null"`
	Name       string          `gorm:"column:name;not null"`
	Qty        int             `gorm:"column:qty;not null"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Discount   decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null"`
	TaxPercent decimal.Decimal `gorm:"column:tax_percent;type:numeric(6,3);not null"`
	TaxAmount  decimal.Decimal `gorm:"column:tax_amount;type:numeric(12,2);not null"`
	GrandTotal decimal.Decimal `gorm:"column:grand_total;type:numeric(12,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
