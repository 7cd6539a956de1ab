package orders

import (
	"github.com/storenest/storenest-backend/pkg/enums"
	pkgerrors "github.com/storenest/storenest-backend/pkg/errors"
)

// allowedTransitions is the single source of truth for fulfillment
// moves. Delivered and Cancelled are terminal.
var allowedTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:   {enums.OrderStatusShipped, enums.OrderStatusCancelled},
	enums.OrderStatusShipped:   {enums.OrderStatusInTransit, enums.OrderStatusCancelled},
	enums.OrderStatusInTransit: {enums.OrderStatusDelivered, enums.OrderStatusCancelled},
	enums.OrderStatusDelivered: {},
	enums.OrderStatusCancelled: {},
}

// CanTransition checks whether an order may move from one status to
// another.
func CanTransition(from, to enums.OrderStatus) error {
	if !from.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", from)
	}
	if !to.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", to)
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return pkgerrors.Newf(pkgerrors.CodeStateConflict, "cannot move order from %s to %s", from, to)
}

// CanCancel checks whether a customer may still cancel the order.
// Cancellation closes once fulfillment starts.
func CanCancel(from enums.OrderStatus) error {
	switch from {
	case enums.OrderStatusPending:
		return nil
	case enums.OrderStatusCancelled:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order is already cancelled")
	default:
		return pkgerrors.Newf(pkgerrors.CodeStateConflict, "order can no longer be cancelled in status %s", from)
	}
}
