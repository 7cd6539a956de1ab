package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storenest/storenest-backend/pkg/db/models"
	"github.com/storenest/storenest-backend/pkg/pagination"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	CreateCancelRequest(ctx context.Context, request *models.CancelRequest) (*models.CancelRequest, error)
	FindByReference(ctx context.Context, reference string) (*models.Order, error)
	FindByReferenceForCustomer(ctx context.Context, customerID uuid.UUID, reference string) (*models.Order, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*OrderList, error)
}
