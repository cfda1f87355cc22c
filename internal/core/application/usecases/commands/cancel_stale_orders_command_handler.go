package commands

import (
	"context"
	"errors"
	"time"

	"orders/internal/core/domain/model/order"
)

// CancelStaleOrdersCommandHandler cancels pending orders that were never
// confirmed within the configured age. Each cancellation goes through the same
// compare-and-swap transition path as an operator-driven status change, so an
// order that gets confirmed concurrently is left alone.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelStaleOrdersCommandHandler creates a handler for stale order cleanup.
// Requires an OrderUoWFactory for transactional persistence.
func NewCancelStaleOrdersCommandHandler(uowFactory OrderUoWFactory) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels every pending order created before now minus the command's
// age threshold. Returns the number of orders cancelled. Orders that lose the
// transition race (confirmed or cancelled by someone else mid-flight) are
// skipped, not treated as failures.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-cmd.OlderThan())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	staleOrders, err := orderRepo.GetAllPendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, aggregate := range staleOrders {
		previous := aggregate.Status()
		if err = aggregate.AdvanceTo(order.Cancelled); err != nil {
			return cancelled, err
		}

		if err = orderRepo.UpdateStatus(ctx, aggregate, previous); err != nil {
			if errors.Is(err, order.ErrInvalidStatusTransition) {
				continue
			}
			return cancelled, err
		}

		cancelled++
	}

	if err = uow.Commit(ctx); err != nil {
		return cancelled, err
	}

	return cancelled, nil
}
