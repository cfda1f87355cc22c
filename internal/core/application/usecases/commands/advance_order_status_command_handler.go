package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// AdvanceOrderStatusCommandHandler handles the business logic for order
// status transitions. Loads the live aggregate, applies the state-machine
// transition, and persists it conditioned on the status that was observed
// at read time so that a stale writer cannot silently overwrite a newer
// transition performed by a concurrent caller.
//
// Example:
//
//	handler := NewAdvanceOrderStatusCommandHandler(uowFactory)
//	cmd, _ := commands.NewAdvanceOrderStatusCommand(orderID, order.Confirmed)
//
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidStatusTransition) {
//	    // Transition rejected: illegal from the current state, or a
//	    // concurrent caller transitioned the order first.
//	}
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderStatusCommandHandler creates a handler for status transition operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status transition command.
//
// The persisted update is a compare-and-swap on the status read within the
// same unit of work. A lost race surfaces as order.ErrInvalidStatusTransition,
// exactly as if the requested transition were invalid at that moment; the
// order is left unchanged and the caller may re-read and retry.
func (h *AdvanceOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous := aggregate.Status()
	if err = aggregate.AdvanceTo(cmd.Next()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStatus(ctx, aggregate, previous); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
