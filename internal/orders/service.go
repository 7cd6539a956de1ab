package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storenest/storenest-backend/internal/catalog"
	"github.com/storenest/storenest-backend/internal/customers"
	"github.com/storenest/storenest-backend/internal/inventory"
	"github.com/storenest/storenest-backend/internal/pricing"
	"github.com/storenest/storenest-backend/pkg/db/models"
	"github.com/storenest/storenest-backend/pkg/enums"
	pkgerrors "github.com/storenest/storenest-backend/pkg/errors"
	"github.com/storenest/storenest-backend/pkg/metrics"
	"github.com/storenest/storenest-backend/pkg/outbox"
	"github.com/storenest/storenest-backend/pkg/outbox/payloads"
	"github.com/storenest/storenest-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service orchestrates order placement and lifecycle changes.
type Service interface {
	PlaceOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*PlaceOrderResult, error)
	GetByReference(ctx context.Context, customerID uuid.UUID, reference string) (*OrderDetail, error)
	List(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*OrderList, error)
	UpdateStatus(ctx context.Context, reference string, next enums.OrderStatus) (*models.Order, error)
	Cancel(ctx context.Context, customerID uuid.UUID, reference string, reason, notes *string) (*models.Order, error)
}

type service struct {
	tx        txRunner
	repo      Repository
	catalog   catalog.Repository
	inventory inventory.Repository
	addresses customers.AddressRepository
	outbox    outboxPublisher
	metrics   *metrics.OrderMetrics
}

// NewService builds the orders service.
func NewService(
	tx txRunner,
	repo Repository,
	catalogRepo catalog.Repository,
	inventoryRepo inventory.Repository,
	addressRepo customers.AddressRepository,
	publisher outboxPublisher,
	orderMetrics *metrics.OrderMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if addressRepo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		catalog:   catalogRepo,
		inventory: inventoryRepo,
		addresses: addressRepo,
		outbox:    publisher,
		metrics:   orderMetrics,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*PlaceOrderResult, error) {
	started := time.Now()
	result, err := s.placeOrder(ctx, customerID, input)
	if err != nil {
		s.metrics.IncRejected(rejectionReason(err))
		return nil, err
	}
	s.metrics.IncPlaced()
	s.metrics.ObservePlacement(time.Since(started))
	return result, nil
}

func (s *service) placeOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*PlaceOrderResult, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order contains no items")
	}
	for _, item := range input.Items {
		if item.VariantID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
		}
		if item.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
	}
	if input.Payment != nil && !input.Payment.Method.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid payment method %q", input.Payment.Method)
	}

	var result *PlaceOrderResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		catalogRepo := s.catalog.WithTx(tx)
		inventoryRepo := s.inventory.WithTx(tx)
		addressRepo := s.addresses.WithTx(tx)

		address, err := addressRepo.DefaultShippingAddress(ctx, customerID)
		if err != nil {
			return err
		}

		now := time.Now()

		// Availability is checked before pricing so the rejection names
		// the SKU; the conditional decrement below stays authoritative.
		for _, item := range input.Items {
			variant, err := catalogRepo.FindVariant(ctx, item.VariantID)
			if err != nil {
				return err
			}
			if err := inventoryRepo.CheckAvailability(ctx, item.VariantID, variant.SKU, item.Qty); err != nil {
				return err
			}
		}

		engine, err := pricing.NewEngine(catalogRepo)
		if err != nil {
			return err
		}
		requests := make([]pricing.LineRequest, len(input.Items))
		for i, item := range input.Items {
			requests[i] = pricing.LineRequest{VariantID: item.VariantID, Qty: item.Qty}
		}
		quote, err := engine.PriceOrder(ctx, requests, now)
		if err != nil {
			return err
		}

		snapshot := models.SnapshotOf(*address)
		if _, err := addressRepo.SaveSnapshot(ctx, &snapshot); err != nil {
			return err
		}

		order := &models.Order{
			ID:             uuid.New(),
			OrderReference: NewOrderReference(),
			CustomerID:     customerID,
			Status:         enums.OrderStatusPending,
			PaymentStatus:  enums.PaymentStatusUnpaid,
			// Billing reuses the shipping snapshot until separate
			// billing addresses land.
			ShippingDetailID: snapshot.ID,
			BillingDetailID:  snapshot.ID,
			Notes:            input.Notes,
			TotalAmount:      quote.TotalAmount,
			TotalTax:         quote.TotalTax,
			TotalDiscount:    quote.TotalDiscount,
			GrandTotal:       quote.GrandTotal,
		}
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}

		items := make([]models.OrderItem, len(quote.Lines))
		for i, line := range quote.Lines {
			items[i] = models.OrderItem{
				ID:         uuid.New(),
				OrderID:    order.ID,
				VariantID:  line.VariantID,
				SKU:        line.SKU,
				Name:       line.Name,
				Qty:        line.Qty,
				UnitPrice:  line.UnitPrice,
				Discount:   line.Discount,
				TaxPercent: line.TaxPercent,
				TaxAmount:  line.TaxAmount,
				GrandTotal: line.LineTotal,
			}
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return err
		}

		for _, line := range quote.Lines {
			if err := inventoryRepo.Decrement(ctx, line.VariantID, line.SKU, line.Qty, customerID); err != nil {
				return err
			}
		}

		if input.Payment != nil {
			amount := quote.GrandTotal
			if input.Payment.Amount != nil {
				amount = *input.Payment.Amount
			}
			payment := &models.Payment{
				ID:      uuid.New(),
				OrderID: order.ID,
				Method:  input.Payment.Method,
				Status:  enums.PaymentStatusUnpaid,
				Amount:  amount,
			}
			if _, err := repo.CreatePayment(ctx, payment); err != nil {
				return err
			}
		}

		itemCount := 0
		for _, item := range input.Items {
			itemCount += item.Qty
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{CustomerID: customerID, Role: enums.ActorRoleCustomer.String()},
			Data: payloads.OrderPlacedEvent{
				OrderID:        order.ID,
				OrderReference: order.OrderReference,
				CustomerID:     customerID,
				ItemCount:      itemCount,
				GrandTotal:     quote.GrandTotal,
			},
			Version: 1,
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		result = &PlaceOrderResult{
			OrderID:        order.ID,
			OrderReference: order.OrderReference,
			Status:         order.Status,
			TotalAmount:    quote.TotalAmount,
			TotalTax:       quote.TotalTax,
			TotalDiscount:  quote.TotalDiscount,
			GrandTotal:     quote.GrandTotal,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) GetByReference(ctx context.Context, customerID uuid.UUID, reference string) (*OrderDetail, error) {
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order reference required")
	}
	order, err := s.repo.FindByReferenceForCustomer(ctx, customerID, reference)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *order}, nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	return s.repo.ListByCustomer(ctx, customerID, params)
}

func (s *service) UpdateStatus(ctx context.Context, reference string, next enums.OrderStatus) (*models.Order, error) {
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order reference required")
	}
	if !next.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", next)
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByReference(ctx, reference)
		if err != nil {
			return err
		}
		if err := CanTransition(order.Status, next); err != nil {
			return err
		}

		updates := map[string]any{"status": next}
		if next == enums.OrderStatusCancelled {
			updates["cancelled_at"] = time.Now()
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return err
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Data: payloads.OrderStatusChangedEvent{
				OrderID:        order.ID,
				OrderReference: order.OrderReference,
				From:           order.Status,
				To:             next,
			},
			Version: 1,
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		order.Status = next
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Cancel(ctx context.Context, customerID uuid.UUID, reference string, reason, notes *string) (*models.Order, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order reference required")
	}

	var cancelled *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByReferenceForCustomer(ctx, customerID, reference)
		if err != nil {
			return err
		}
		if err := CanCancel(order.Status); err != nil {
			return err
		}

		request := &models.CancelRequest{
			ID:          uuid.New(),
			OrderID:     order.ID,
			RequestedBy: customerID,
			ActorRole:   enums.ActorRoleCustomer,
			Reason:      reason,
			Notes:       notes,
			Status:      enums.CancelRequestStatusApproved,
		}
		if _, err := repo.CreateCancelRequest(ctx, request); err != nil {
			return err
		}

		now := time.Now()
		if err := repo.UpdateOrder(ctx, order.ID, map[string]any{
			"status":       enums.OrderStatusCancelled,
			"cancelled_at": now,
		}); err != nil {
			return err
		}

		reasonText := ""
		if reason != nil {
			reasonText = *reason
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventOrderCanceled,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{CustomerID: customerID, Role: enums.ActorRoleCustomer.String()},
			Data: payloads.OrderCanceledEvent{
				OrderID:        order.ID,
				OrderReference: order.OrderReference,
				CustomerID:     customerID,
				CancelledAt:    now,
				Reason:         reasonText,
			},
			Version: 1,
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		order.Status = enums.OrderStatusCancelled
		order.CancelledAt = &now
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func rejectionReason(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "internal"
	}
	switch typed.Code() {
	case pkgerrors.CodeConflict:
		return "insufficient_stock"
	case pkgerrors.CodeValidation:
		return "validation"
	case pkgerrors.CodeNotFound:
		return "not_found"
	case pkgerrors.CodeStateConflict:
		return "state_conflict"
	default:
		return string(typed.Code())
	}
}
