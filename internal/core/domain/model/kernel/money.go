package kernel

import (
	"fmt"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits carried by monetary amounts.
// All derived amounts (line totals, order totals) are rounded to this scale.
const MoneyScale = 2

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money must be created using NewMoney, NewMoneyFromString, or ZeroMoney to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, NewMoneyFromString, or ZeroMoney constructors")

// Money is an immutable value object representing a non-negative monetary amount.
// It is backed by decimal arithmetic so currency fractions are never computed
// with binary floating point. The zero value of Money is invalid and will fail
// validation - use constructors to create instances.
//
// Example:
//
//	price, err := kernel.NewMoneyFromString("5.50")
//	if err != nil {
//	    // Handle validation error
//	}
//	total := price.MulQuantity(2)
//	fmt.Println(total) // Output: 11.00
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money from a decimal amount.
// The amount must not be negative. Returns an error otherwise.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String()))
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewMoneyFromString creates a Money from a decimal string such as "10.00".
// Returns an error if the string is not a valid decimal or the amount is negative.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns a properly constructed zero amount.
func ZeroMoney() Money {
	return Money{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// MulQuantity multiplies the amount by an item quantity, rounded to MoneyScale.
// This is the line-total computation: unit price times quantity.
func (m Money) MulQuantity(quantity int) Money {
	return Money{
		amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyScale),
		guard:  guard.NewConstructorGuard(),
	}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{
		amount: m.amount.Add(other.amount),
		guard:  guard.NewConstructorGuard(),
	}
}

// IsEqual compares two amounts for numeric equality.
// "5.5" and "5.50" are considered equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount formatted with exactly MoneyScale fractional digits.
//
// Example:
//
//	m, _ := kernel.NewMoneyFromString("25.5")
//	fmt.Println(m.String()) // Output: 25.50
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// Validate checks that the Money was created through a constructor.
// Returns ErrMoneyIsNotConstructed for zero-value instances.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
