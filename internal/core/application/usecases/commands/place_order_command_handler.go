package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Resolves the purchasing account and catalog products, snapshots product
// names onto the order lines, computes the total with exact decimal
// arithmetic, and persists the order with its lines as one atomic unit.
//
// Placement is not idempotent: retrying after an ambiguous failure may create
// a duplicate order unless the caller has confirmed the prior attempt failed.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, accounts, catalog)
//	cmd, _ := commands.NewPlaceOrderCommand(ownerID, cartLines)
//
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	fmt.Printf("Order %s placed, total %s", placed.ID(), placed.TotalAmount())
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	accounts   ports.AccountDirectory
	catalog    ports.ProductCatalog
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
// Requires an OrderUoWFactory for transactional persistence plus the account
// directory and product catalog collaborators for reference validation.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	accounts ports.AccountDirectory,
	catalog ports.ProductCatalog,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		accounts:   accounts,
		catalog:    catalog,
	}
}

// Handle processes the order placement command.
//
// All references are resolved and all lines are built before any persistence
// is attempted, so a validation or reference failure has no side effects.
// Returns the fully populated order on success; on any error no visible order
// exists afterward.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	exists, err := h.accounts.Exists(ctx, cmd.OwnerID())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("ownerId", cmd.OwnerID().String())
	}

	lines, err := h.buildLines(ctx, cmd.Lines())
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), cmd.OwnerID(), lines)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// buildLines resolves every cart line against the catalog and materializes the
// order lines with name snapshots. Fails on the first unresolvable product.
func (h *PlaceOrderCommandHandler) buildLines(ctx context.Context, cartLines []CartLine) ([]order.Line, error) {
	lines := make([]order.Line, 0, len(cartLines))
	for _, cartLine := range cartLines {
		product, err := h.catalog.GetProduct(ctx, cartLine.ProductID())
		if err != nil {
			return nil, err
		}

		line, err := order.NewLine(product.ID, product.Name, cartLine.UnitPrice(), cartLine.Quantity())
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return lines, nil
}
