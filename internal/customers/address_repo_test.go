package customers

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
	dsn := "file:customers_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ShippingAddress{}, &models.ShippingDetail{}))
	return db
}

func TestDefaultShippingAddress(t *testing.T) {
	db := newTestDB(t)
	repo := NewAddressRepository(db)
	ctx := context.Background()
	customerID := uuid.New()

	_, err := repo.SaveAddress(ctx, &models.ShippingAddress{
		CustomerID: customerID,
		Recipient:  "A. Jones",
		Phone:      "555-0100",
		Line1:      "12 Elm St",
		City:       "Springfield",
		Region:     "IL",
		PostalCode: "62704",
		Country:    "US",
		IsDefault:  false,
	})
	require.NoError(t, err)

	def, err := repo.SaveAddress(ctx, &models.ShippingAddress{
		CustomerID: customerID,
		Recipient:  "A. Jones",
		Phone:      "555-0100",
		Line1:      "99 Oak Ave",
		City:       "Springfield",
		Region:     "IL",
		PostalCode: "62704",
		Country:    "US",
		IsDefault:  true,
	})
	require.NoError(t, err)

	got, err := repo.DefaultShippingAddress(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, def.ID, got.ID)
	assert.Equal(t, "99 Oak Ave", got.Line1)
}

func TestDefaultShippingAddressMissing(t *testing.T) {
	repo := NewAddressRepository(newTestDB(t))

	_, err := repo.DefaultShippingAddress(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	assert.Contains(t, err.Error(), "please add a shipping address")
}

func TestSaveSnapshotFreezesAddress(t *testing.T) {
	db := newTestDB(t)
	repo := NewAddressRepository(db)
	ctx := context.Background()
	customerID := uuid.New()

	addr, err := repo.SaveAddress(ctx, &models.ShippingAddress{
		CustomerID: customerID,
		Recipient:  "B. Ortiz",
		Phone:      "555-0101",
		Line1:      "7 Pine Rd",
		City:       "Dayton",
		Region:     "OH",
		PostalCode: "45402",
		Country:    "US",
		IsDefault:  true,
	})
	require.NoError(t, err)

	snapshot := models.SnapshotOf(*addr)
	saved, err := repo.SaveSnapshot(ctx, &snapshot)
	require.NoError(t, err)

	// Later edits to the live address never touch the snapshot.
	addr.Line1 = "8 Pine Rd"
	_, err = repo.SaveAddress(ctx, addr)
	require.NoError(t, err)

	var frozen models.ShippingDetail
	require.NoError(t, db.First(&frozen, "id = ?", saved.ID).Error)
	assert.Equal(t, "7 Pine Rd", frozen.Line1)
}
