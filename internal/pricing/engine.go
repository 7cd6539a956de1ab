package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storenest/storenest-backend/internal/catalog"
	"github.com/storenest/storenest-backend/pkg/db/models"
	pkgerrors "github.com/storenest/storenest-backend/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// CatalogReader is the catalog surface the engine prices against.
// catalog.Repository satisfies it; tests substitute an in-memory stub.
type CatalogReader interface {
	FindVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error)
	TaxPercentFor(ctx context.Context, variantID uuid.UUID) (decimal.Decimal, error)
	DiscountFor(ctx context.Context, variantID uuid.UUID, at time.Time) (catalog.DiscountTotals, error)
}

// LineRequest identifies one variant and quantity to price.
type LineRequest struct {
	VariantID uuid.UUID
	Qty       int
}

// LineQuote is the priced snapshot of a single line. All monetary
// fields are rounded to two decimal places.
type LineQuote struct {
	VariantID  uuid.UUID
	SKU        string
	Name       string
	Qty        int
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	TaxPercent decimal.Decimal
	TaxAmount  decimal.Decimal
	LineTotal  decimal.Decimal
}

// Quote aggregates priced lines into order totals.
type Quote struct {
	Lines         []LineQuote
	TotalAmount   decimal.Decimal
	TotalTax      decimal.Decimal
	TotalDiscount decimal.Decimal
	GrandTotal    decimal.Decimal
}

// Engine prices order lines from catalog data.
type Engine struct {
	catalog CatalogReader
}

// NewEngine builds a pricing engine over the given catalog.
func NewEngine(reader CatalogReader) (*Engine, error) {
	if reader == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog reader required")
	}
	return &Engine{catalog: reader}, nil
}

// PriceOrder prices every requested line and computes order aggregates.
// Tax is charged on the pre-discount subtotal; discounts never exceed
// the line subtotal.
func (e *Engine) PriceOrder(ctx context.Context, requests []LineRequest, at time.Time) (*Quote, error) {
	if len(requests) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order contains no items")
	}

	quote := &Quote{
		Lines:         make([]LineQuote, 0, len(requests)),
		TotalAmount:   decimal.Zero,
		TotalTax:      decimal.Zero,
		TotalDiscount: decimal.Zero,
	}

	for _, req := range requests {
		line, err := e.priceLine(ctx, req, at)
		if err != nil {
			return nil, err
		}
		quote.Lines = append(quote.Lines, *line)
		quote.TotalAmount = quote.TotalAmount.Add(line.Subtotal)
		quote.TotalTax = quote.TotalTax.Add(line.TaxAmount)
		quote.TotalDiscount = quote.TotalDiscount.Add(line.Discount)
	}

	quote.TotalAmount = quote.TotalAmount.Round(2)
	quote.TotalTax = quote.TotalTax.Round(2)
	quote.TotalDiscount = quote.TotalDiscount.Round(2)
	quote.GrandTotal = quote.TotalAmount.Add(quote.TotalTax).Sub(quote.TotalDiscount).Round(2)

	return quote, nil
}

func (e *Engine) priceLine(ctx context.Context, req LineRequest, at time.Time) (*LineQuote, error) {
	if req.Qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	variant, err := e.catalog.FindVariant(ctx, req.VariantID)
	if err != nil {
		return nil, err
	}

	taxPercent, err := e.catalog.TaxPercentFor(ctx, req.VariantID)
	if err != nil {
		return nil, err
	}

	discounts, err := e.catalog.DiscountFor(ctx, req.VariantID, at)
	if err != nil {
		return nil, err
	}

	qty := decimal.NewFromInt(int64(req.Qty))
	subtotal := variant.Price.Mul(qty).Round(2)

	discount := discounts.PercentSum.Div(hundred).Mul(subtotal).
		Add(discounts.FlatSum.Mul(qty)).
		Round(2)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	tax := taxPercent.Div(hundred).Mul(subtotal).Round(2)

	return &LineQuote{
		VariantID:  req.VariantID,
		SKU:        variant.SKU,
		Name:       variant.Name,
		Qty:        req.Qty,
		UnitPrice:  variant.Price,
		Subtotal:   subtotal,
		Discount:   discount,
		TaxPercent: taxPercent,
		TaxAmount:  tax,
		LineTotal:  subtotal.Sub(discount).Add(tax).Round(2),
	}, nil
}
