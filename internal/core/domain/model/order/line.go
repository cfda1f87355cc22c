package order

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created through
// the NewLine or RestoreLine factory functions.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine")

// MinLineQuantity is the smallest quantity an order line may carry.
const MinLineQuantity = 1

// Line is a value object representing one product entry within an order.
// The product name and unit price are snapshots taken at order time, so later
// catalog edits do not retroactively alter historical orders.
//
// Line follows these invariants:
//   - Must reference a valid product identifier
//   - Product name must not be empty
//   - Unit price must be a constructed, non-negative Money
//   - Quantity must be at least MinLineQuantity
//
// The line total is always derived as unitPrice × quantity; it is never set
// independently, which keeps the stored total from drifting from its inputs.
type Line struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	productName string
	unitPrice   kernel.Money
	quantity    int

	guard guard.ConstructorGuard
}

// NewLine creates a validated order line with a product snapshot.
//
// Parameters:
//   - productID: Catalog product reference (must be a valid UUID)
//   - productName: Product name snapshot at order time (must not be empty)
//   - unitPrice: Price snapshot at order time (must be constructed)
//   - quantity: Number of units (must be at least MinLineQuantity)
//
// Example:
//
//	price, _ := kernel.NewMoneyFromString("10.00")
//	line, err := order.NewLine(kernel.NewUUID(), "Espresso beans 1kg", price, 2)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(line.Total()) // Output: 20.00
func NewLine(productID kernel.UUID, productName string, unitPrice kernel.Money, quantity int) (Line, error) {
	line := Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setProductID(productID),
		line.setProductName(productName),
		line.setUnitPrice(unitPrice),
		line.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// RestoreLine reconstructs a line from persistence, verifying the stored line
// total against the recomputed unitPrice × quantity as an integrity check.
// A mismatch means the stored record drifted from its inputs and the line is
// rejected rather than silently trusted.
func RestoreLine(
	productID kernel.UUID,
	productName string,
	unitPrice kernel.Money,
	quantity int,
	storedTotal kernel.Money,
) (Line, error) {
	line, err := NewLine(productID, productName, unitPrice, quantity)
	if err != nil {
		return Line{}, err
	}

	if err := storedTotal.Validate(); err != nil {
		return Line{}, err
	}

	if !line.Total().IsEqual(storedTotal) {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("lineTotal",
			fmt.Errorf("stored total %s does not match %s × %d", storedTotal, unitPrice, quantity))
	}

	return line, nil
}

// Validate ensures the Line instance was properly constructed.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ProductID returns the referenced catalog product identifier.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// ProductName returns the product name snapshot taken at order time.
func (l Line) ProductName() string {
	return l.productName
}

// UnitPrice returns the price snapshot taken at order time.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Quantity returns the number of units ordered.
func (l Line) Quantity() int {
	return l.quantity
}

// Total returns the derived line total: unitPrice × quantity.
func (l Line) Total() kernel.Money {
	return l.unitPrice.MulQuantity(l.quantity)
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	l.productName = productName
	return nil
}

func (l *Line) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	l.unitPrice = unitPrice
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < MinLineQuantity {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than %d", quantity, MinLineQuantity))
	}
	l.quantity = quantity
	return nil
}
