package order

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a customer's checkout transaction. It is the aggregate root
// that manages the order's line items, monetary total, and fulfillment lifecycle.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owner reference
//   - Must have at least one order line
//   - The total amount is always the exact sum of line totals
//   - Owner and lines are set exactly once, at creation, and never mutated
//   - Status transitions follow the fulfillment state machine; terminal states are frozen
//   - Can only be created through NewOrder or RestoreOrder
//
// Only the status (and the accompanying updatedAt timestamp) changes after
// creation. Corrections to items require a new order, not a mutation.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// ownerID references the purchasing account
	ownerID kernel.UUID

	// lines is the non-empty ordered sequence of product entries
	lines []Line

	// totalAmount is the sum of line totals, maintained by construction
	totalAmount kernel.Money

	// status represents the current state in the fulfillment lifecycle
	status Status

	// createdAt is set once at creation
	createdAt time.Time

	// updatedAt changes on every status transition
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with the given line items.
// This is the only way to create a valid new Order, ensuring all business
// invariants are maintained. The total amount is computed from the lines and
// is not independently settable.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - ownerID: The purchasing account (must be a valid UUID)
//   - lines: At least one validated order line
//
// Example:
//
//	price, _ := kernel.NewMoneyFromString("5.50")
//	line, _ := order.NewLine(productID, "Filter papers", price, 1)
//	o, err := order.NewOrder(kernel.NewUUID(), ownerID, []order.Line{line})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, ownerID kernel.UUID, lines []Line) (*Order, error) {
	now := time.Now().UTC()

	order := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwnerID(ownerID),
		order.setLines(lines),
	); err != nil {
		return nil, err
	}

	order.totalAmount = sumLineTotals(order.lines)
	return order, nil
}

// RestoreOrder reconstructs an order from persistence.
//
// Unlike NewOrder it accepts an arbitrary lifecycle status and the stored
// timestamps, and it verifies the stored total amount against the recomputed
// sum of line totals. A mismatch indicates the persisted record violates the
// total-amount invariant and the order is rejected.
func RestoreOrder(
	id kernel.UUID,
	ownerID kernel.UUID,
	lines []Line,
	totalAmount kernel.Money,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwnerID(ownerID),
		order.setLines(lines),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	if err := totalAmount.Validate(); err != nil {
		return nil, err
	}

	if computed := sumLineTotals(order.lines); !computed.IsEqual(totalAmount) {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("stored total %s does not match sum of line totals %s", totalAmount, computed))
	}

	order.totalAmount = totalAmount
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory function.
// This prevents bypassing validation by directly instantiating the struct.
//
// This method should be called when reconstructing orders from persistence
// to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OwnerID returns the purchasing account's identifier.
func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

// Lines returns a copy of the order's line items.
// A copy is returned so callers cannot mutate the immutable line sequence.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// TotalAmount returns the order total: the exact sum of line totals.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AdvanceTo moves the order to the next lifecycle status.
//
// This method enforces the following business rules:
//   - The target must be the immediate successor in the forward chain,
//     or Cancelled from any non-terminal state
//   - Orders in Delivered or Cancelled status accept no transitions
//
// On success the status and updatedAt are updated; no other field changes.
//
// Example:
//
//	if err := o.AdvanceTo(order.Confirmed); err != nil {
//	    // Transition not allowed from the current status
//	}
func (o *Order) AdvanceTo(next Status) error {
	newStatus, err := o.status.Advance(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOwnerID validates and sets the purchasing account reference.
// This is a private method used only during construction.
func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerId", err)
	}
	o.ownerID = ownerID
	return nil
}

// setLines validates and sets the order's line items.
// The sequence must be non-empty and every line must be constructed.
// This is a private method used only during construction.
func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

// setStatus validates and sets the lifecycle status during restoration.
// This is a private method used only during construction.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// sumLineTotals computes the exact sum of line totals.
func sumLineTotals(lines []Line) kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range lines {
		total = total.Add(line.Total())
	}
	return total
}
