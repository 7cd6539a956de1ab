package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/storenest/storenest-backend/pkg/db/models"
	pkgerrors "github.com/storenest/storenest-backend/pkg/errors"
)

// DiscountTotals aggregates the discount rules in effect for a variant.
type DiscountTotals struct {
	PercentSum decimal.Decimal
	FlatSum    decimal.Decimal
}

// Repository exposes the catalog reads the pricing path needs. Callers
// bind it into the order transaction via WithTx so every lookup observes
// the same snapshot.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error)
	TaxPercentFor(ctx context.Context, variantID uuid.UUID) (decimal.Decimal, error)
	DiscountFor(ctx context.Context, variantID uuid.UUID, at time.Time) (DiscountTotals, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", variantID, true).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "variant %s not found", variantID)
		}
		return nil, err
	}
	return &variant, nil
}

func (r *repository) TaxPercentFor(ctx context.Context, variantID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Percent decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(tr.percent), 0) AS percent
FROM product_taxes pt
JOIN tax_rules tr ON tr.id = pt.tax_rule_id
WHERE pt.variant_id = ? AND tr.active = ?`, variantID, true).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Percent, nil
}

func (r *repository) DiscountFor(ctx context.Context, variantID uuid.UUID, at time.Time) (DiscountTotals, error) {
	var row struct {
		PercentSum decimal.Decimal
		FlatSum    decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT
  COALESCE(SUM(CASE WHEN dr.type = 'percentage' THEN dr.value ELSE 0 END), 0) AS percent_sum,
  COALESCE(SUM(CASE WHEN dr.type = 'flat' THEN dr.value ELSE 0 END), 0) AS flat_sum
FROM product_discounts pd
JOIN discount_rules dr ON dr.id = pd.discount_rule_id
WHERE pd.variant_id = ?
  AND dr.active = ?
  AND (dr.starts_at IS NULL OR dr.starts_at <= ?)
  AND (dr.ends_at IS NULL OR dr.ends_at >= ?)`, variantID, true, at, at).
		Scan(&row).Error
	if err != nil {
		return DiscountTotals{}, err
	}
	return DiscountTotals{PercentSum: row.PercentSum, FlatSum: row.FlatSum}, nil
}
