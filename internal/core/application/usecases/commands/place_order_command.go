package commands

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrCartLineIsNotConstructed = errors.New(
		"CartLine must be created via NewCartLine constructor",
	)
)

// CartLine represents one requested product entry in an order placement request:
// the product to buy, how many units, and the unit price quoted to the customer.
type CartLine struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewCartLine creates a validated cart line.
// The product ID must be a valid UUID, the quantity must be at least one unit,
// and the unit price must be a constructed, non-negative amount.
func NewCartLine(productID kernel.UUID, quantity int, unitPrice kernel.Money) (CartLine, error) {
	line := CartLine{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setProductID(productID),
		line.setQuantity(quantity),
		line.setUnitPrice(unitPrice),
	); err != nil {
		return CartLine{}, err
	}

	return line, nil
}

// Validate ensures the cart line was created through the constructor.
func (l CartLine) Validate() error {
	return l.guard.Validate(ErrCartLineIsNotConstructed)
}

// ProductID returns the requested catalog product identifier.
func (l CartLine) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the requested number of units.
func (l CartLine) Quantity() int {
	return l.quantity
}

// UnitPrice returns the quoted price per unit.
func (l CartLine) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l *CartLine) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *CartLine) setQuantity(quantity int) error {
	if quantity < order.MinLineQuantity {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than %d", quantity, order.MinLineQuantity))
	}
	l.quantity = quantity
	return nil
}

func (l *CartLine) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	l.unitPrice = unitPrice
	return nil
}

// PlaceOrderCommand represents a request to place a new order: the purchasing
// account plus a non-empty sequence of cart lines.
//
// Every line is validated before any persistence is attempted - a single bad
// line rejects the whole command and no partial order is ever created.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromString("10.00")
//	line, _ := commands.NewCartLine(productID, 2, price)
//	cmd, err := commands.NewPlaceOrderCommand(ownerID, []commands.CartLine{line})
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID
	lines   []CartLine

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that the owner ID is valid and that the cart contains at least one
// constructed line. Returns an error if any validation fails.
func NewPlaceOrderCommand(ownerID kernel.UUID, lines []CartLine) (PlaceOrderCommand, error) {
	orderCommand := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOwnerID(ownerID),
		orderCommand.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OwnerID returns the purchasing account identifier.
func (c PlaceOrderCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Lines returns the requested cart lines.
func (c PlaceOrderCommand) Lines() []CartLine {
	return c.lines
}

func (c *PlaceOrderCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerId", err)
	}
	c.ownerID = ownerID
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []CartLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}

	c.lines = lines
	return nil
}
