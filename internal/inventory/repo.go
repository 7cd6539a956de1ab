package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storenest/storenest-backend/pkg/db/models"
	pkgerrors "github.com/storenest/storenest-backend/pkg/errors"
)

// Repository guards stock levels for order placement.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByVariant(ctx context.Context, variantID uuid.UUID) (*models.InventoryRecord, error)
	CheckAvailability(ctx context.Context, variantID uuid.UUID, sku string, qty int) error
	Decrement(ctx context.Context, variantID uuid.UUID, sku string, qty int, updatedBy uuid.UUID) error
	Upsert(ctx context.Context, record *models.InventoryRecord) (*models.InventoryRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByVariant(ctx context.Context, variantID uuid.UUID) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "no inventory record for variant %s", variantID)
		}
		return nil, err
	}
	return &record, nil
}

// CheckAvailability is the advisory read used before pricing. The
// authoritative guard is the conditional UPDATE in Decrement.
func (r *repository) CheckAvailability(ctx context.Context, variantID uuid.UUID, sku string, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	record, err := r.FindByVariant(ctx, variantID)
	if err != nil {
		return err
	}
	if record.Sellable() < qty {
		return pkgerrors.Newf(pkgerrors.CodeConflict, "insufficient stock for %s", sku)
	}
	return nil
}

// Decrement reduces on-hand stock with a single conditional UPDATE.
// Zero rows affected means a concurrent order consumed the stock first;
// under Postgres the losing writer blocks on the row lock and re-checks
// the predicate, so check-then-decrement cannot oversell.
func (r *repository) Decrement(ctx context.Context, variantID uuid.UUID, sku string, qty int, updatedBy uuid.UUID) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	res := r.db.WithContext(ctx).
		Model(&models.InventoryRecord{}).
		Where("variant_id = ? AND quantity - reserved_qty >= ?", variantID, qty).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.InventoryRecord{}).
			Where("variant_id = ?", variantID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "no inventory record for variant %s", variantID)
		}
		return pkgerrors.Newf(pkgerrors.CodeConflict, "insufficient stock for %s", sku)
	}
	return nil
}

func (r *repository) Upsert(ctx context.Context, record *models.InventoryRecord) (*models.InventoryRecord, error) {
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory record required")
	}
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}
