package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/storenest/storenest-backend/pkg/enums"
)

// CancelRequest is the audit record written when an order is cancelled.
type CancelRequest struct {
	ID          uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID                 `gorm:"column:order_id;type:uuid;not null;index"`
	RequestedBy uuid.UUID                 `gorm:"column:requested_by;type:uuid;not null"`
	ActorRole   enums.ActorRole           `gorm:"column:actor_role;type:text;not null"`
	Reason      *string                   `gorm:"column:reason"`
	Notes       *string                   `gorm:"column:notes"`
	Status      enums.CancelRequestStatus `gorm:"column:status;type:text;not null;default:'approved'"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime"`
}
