package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storenest/storenest-backend/pkg/enums"
)

// Order is a customer order with its priced item snapshots.
type Order struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	OrderReference   string              `gorm:"column:order_reference;not null;uniqueIndex"`
	CustomerID       uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	Status           enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentStatus    enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'unpaid'"`
	ShippingDetailID uuid.UUID           `gorm:"column:shipping_detail_id;type:uuid;not null"`
	BillingDetailID  uuid.UUID           `gorm:"column:billing_detail_id;type:uuid;not null"`
	Notes            *string             `gorm:"column:notes"`
	TotalAmount      decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null"`
	TotalTax         decimal.Decimal     `gorm:"column:total_tax;type:numeric(12,2);not null"`
	TotalDiscount    decimal.Decimal     `gorm:"column:total_discount;type:numeric(12,2);not null"`
	GrandTotal       decimal.Decimal     `gorm:"column:grand_total;type:numeric(12,2);not null"`
	ShippingDetail   *ShippingDetail     `gorm:"foreignKey:ShippingDetailID"`
	Items            []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment          *Payment            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CancelledAt      *time.Time          `gorm:"column:cancelled_at"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
