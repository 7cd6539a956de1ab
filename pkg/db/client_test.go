package db

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/storenest/storenest-backend/pkg/logger"
)

type txProbe struct {
	ID    string `gorm:"primaryKey"`
	Label string
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	dsn := "file:dbclient_" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&txProbe{}))

	log := logger.New(logger.Options{ServiceName: "db-test", Output: io.Discard})
	return NewClientFromGorm(gdb, log)
}

func TestWithTxCommits(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&txProbe{ID: "a", Label: "kept"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, client.Gorm().Model(&txProbe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&txProbe{ID: "b", Label: "discarded"}).Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, client.Gorm().Model(&txProbe{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = client.WithTx(ctx, func(tx *gorm.DB) error {
			if err := tx.Create(&txProbe{ID: "c"}).Error; err != nil {
				return err
			}
			panic("kaboom")
		})
	})

	var count int64
	require.NoError(t, client.Gorm().Model(&txProbe{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestIsUniqueViolation(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Gorm().WithContext(ctx).Create(&txProbe{ID: "dup"}).Error)
	err := client.Gorm().WithContext(ctx).Create(&txProbe{ID: "dup"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.False(t, IsUniqueViolation(nil))
}
