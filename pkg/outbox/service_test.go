package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/storenest/storenest-backend/pkg/db/models"
	"github.com/storenest/storenest-backend/pkg/enums"
	"github.com/storenest/storenest-backend/pkg/logger"
	"github.com/storenest/storenest-backend/pkg/outbox/payloads"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:outbox_" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.OutboxEvent{}))
	return gdb
}

func TestEmitWritesEnvelopeInsideTransaction(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	logg := logger.New(logger.Options{ServiceName: "outbox-test", Output: io.Discard})
	svc := NewService(repo, logg)

	orderID := uuid.New()
	customerID := uuid.New()

	err := gdb.Transaction(func(tx *gorm.DB) error {
		return svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   orderID,
			Actor:         &ActorRef{CustomerID: customerID, Role: "customer"},
			Data: payloads.OrderPlacedEvent{
				OrderID:        orderID,
				OrderReference: "1700000000000-0000000001",
				CustomerID:     customerID,
				ItemCount:      2,
			},
			Version: 1,
		})
	})
	require.NoError(t, err)

	rows, err := repo.FetchUnpublished(10, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.EventOrderCreated, rows[0].EventType)
	assert.Equal(t, orderID, rows[0].AggregateID)

	var envelope PayloadEnvelope
	require.NoError(t, json.Unmarshal(rows[0].Payload, &envelope))
	assert.Equal(t, 1, envelope.Version)
	assert.NotEmpty(t, envelope.EventID)
	require.NotNil(t, envelope.Actor)
	assert.Equal(t, customerID, envelope.Actor.CustomerID)
}

func TestEmitRequiresTransaction(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)), nil)
	err := svc.Emit(context.Background(), nil, DomainEvent{})
	assert.Error(t, err)
}

func TestMarkPublishedAndFailed(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)

	event := models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.EventOrderStatusChanged,
		AggregateType: enums.AggregateOrder,
		AggregateID:   uuid.New(),
		Payload:       json.RawMessage(`{}`),
	}
	require.NoError(t, gdb.Create(&event).Error)

	require.NoError(t, repo.MarkFailed(event.ID, errors.New("publish timeout")))

	var failed models.OutboxEvent
	require.NoError(t, gdb.First(&failed, "id = ?", event.ID).Error)
	assert.Equal(t, 1, failed.AttemptCount)
	require.NotNil(t, failed.LastError)
	assert.Equal(t, "publish timeout", *failed.LastError)

	require.NoError(t, repo.MarkPublished(event.ID))

	rows, err := repo.FetchUnpublished(10, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
