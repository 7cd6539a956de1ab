package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/storenest/storenest-backend/pkg/db/models"
	pkgerrors "github.com/storenest/storenest-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.InventoryRecord{}))
	return db
}

func seedRecord(t *testing.T, db *gorm.DB, qty, reserved int) uuid.UUID {
	t.Helper()
	variantID := uuid.New()
	require.NoError(t, db.Create(&models.InventoryRecord{
		VariantID:   variantID,
		Quantity:    qty,
		ReservedQty: reserved,
	}).Error)
	return variantID
}

func TestCheckAvailability(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	variantID := seedRecord(t, db, 10, 4)

	require.NoError(t, repo.CheckAvailability(ctx, variantID, "SKU-1", 6))

	err := repo.CheckAvailability(ctx, variantID, "SKU-1", 7)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
	assert.Contains(t, err.Error(), "insufficient stock for SKU-1")
}

func TestCheckAvailabilityMissingRecord(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	err := repo.CheckAvailability(context.Background(), uuid.New(), "SKU-X", 1)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestDecrementReducesQuantity(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	variantID := seedRecord(t, db, 10, 0)
	actor := uuid.New()

	require.NoError(t, repo.Decrement(ctx, variantID, "SKU-1", 4, actor))

	record, err := repo.FindByVariant(ctx, variantID)
	require.NoError(t, err)
	assert.Equal(t, 6, record.Quantity)
	require.NotNil(t, record.UpdatedBy)
	assert.Equal(t, actor, *record.UpdatedBy)
}

func TestDecrementRespectsReservedStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	variantID := seedRecord(t, db, 10, 8)

	err := repo.Decrement(ctx, variantID, "SKU-1", 3, uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))

	record, err := repo.FindByVariant(ctx, variantID)
	require.NoError(t, err)
	assert.Equal(t, 10, record.Quantity)
}

func TestDecrementMissingRecord(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	err := repo.Decrement(context.Background(), uuid.New(), "SKU-X", 1, uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestDecrementStopsAtZeroSellable(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	variantID := seedRecord(t, db, 5, 0)

	succeeded := 0
	for i := 0; i < 10; i++ {
		if err := repo.Decrement(ctx, variantID, "SKU-1", 1, uuid.New()); err == nil {
			succeeded++
		} else {
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
		}
	}
	assert.Equal(t, 5, succeeded)

	record, err := repo.FindByVariant(ctx, variantID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, record.Quantity, 0)
	assert.Equal(t, 0, record.Quantity)
}
