package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storenest/storenest-backend/pkg/db/models"
	"github.com/storenest/storenest-backend/pkg/enums"
)

// ItemInput is one (variant, quantity) pair in a placement request.
type ItemInput struct {
	VariantID uuid.UUID `json:"variant_id" validate:"required"`
	Qty       int       `json:"qty" validate:"required,gt=0"`
}

// PaymentInput carries the optional payment details for a new order.
// When Amount is nil the order grand total is charged.
type PaymentInput struct {
	Method enums.PaymentMethod `json:"method" validate:"required"`
	Amount *decimal.Decimal    `json:"amount,omitempty"`
}

// PlaceOrderInput is the validated request for PlaceOrder.
type PlaceOrderInput struct {
	Items   []ItemInput   `json:"items" validate:"required,min=1,dive"`
	Notes   *string       `json:"notes,omitempty"`
	Payment *PaymentInput `json:"payment,omitempty"`
}

// PlaceOrderResult is returned after a successful placement.
type PlaceOrderResult struct {
	OrderID        uuid.UUID         `json:"order_id"`
	OrderReference string            `json:"order_reference"`
	Status         enums.OrderStatus `json:"status"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	TotalTax       decimal.Decimal   `json:"total_tax"`
	TotalDiscount  decimal.Decimal   `json:"total_discount"`
	GrandTotal     decimal.Decimal   `json:"grand_total"`
}

// OrderSummary exposes the aggregated fields returned in the customer list.
type OrderSummary struct {
	OrderReference string              `json:"order_reference"`
	CreatedAt      time.Time           `json:"created_at"`
	Status         enums.OrderStatus   `json:"status"`
	PaymentStatus  enums.PaymentStatus `json:"payment_status"`
	TotalItems     int                 `json:"total_items"`
	GrandTotal     decimal.Decimal     `json:"grand_total"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrderDetail is the full order view with its frozen line items.
type OrderDetail struct {
	Order models.Order `json:"order"`
}
