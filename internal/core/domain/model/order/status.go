package order

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
)

// ErrInvalidStatusTransition is returned when a requested status change is not
// allowed from the order's current state: skipping a fulfillment stage, moving
// backward, or transitioning an order that already reached a terminal state.
// It is also returned when a transition loses a race against a concurrent
// writer, since from the caller's point of view the requested transition is
// simply no longer valid - re-read the order and retry.
var ErrInvalidStatusTransition = errors.New("invalid order status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> OutForDelivery ──> Delivered
//	   │            │             │               │
//	   └────────────┴─────────────┴───────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no further transitions are allowed.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first placed.
	Pending

	// Confirmed indicates the order has been accepted for fulfillment.
	Confirmed

	// Preparing indicates the order is being picked and packed.
	Preparing

	// OutForDelivery indicates the order has left for the delivery address.
	OutForDelivery

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was cancelled before delivery.
	// Reachable from any non-terminal state; terminal itself.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// StatusFromString parses the wire representation of a status ("pending",
// "out_for_delivery", ...). Returns an error for unrecognized values.
//
// Example:
//
//	status, err := order.StatusFromString("confirmed")
//	if err != nil {
//	    // Handle unknown status value
//	}
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Preparing, OutForDelivery,
// Delivered, Cancelled. Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
// Returns "unknown" for invalid status values.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status ends the order lifecycle.
// Terminal orders accept no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// next returns the immediate successor in the forward fulfillment chain,
// or Unknown when there is none.
func (s Status) next() Status {
	switch s {
	case Pending:
		return Confirmed
	case Confirmed:
		return Preparing
	case Preparing:
		return OutForDelivery
	case OutForDelivery:
		return Delivered
	default:
		return Unknown
	}
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
//
// A transition is allowed only if next is the immediate successor in the
// forward chain, or next is Cancelled and s is not already terminal.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == Cancelled {
		return s.Validate() == nil
	}
	return s.next() == next
}

// Advance transitions the status to next.
//
// Returns:
//   - (next, nil) on a valid transition
//   - (Unknown, error wrapping ErrInvalidStatusTransition) otherwise
//
// This method is used by Order.AdvanceTo() to enforce state transitions.
//
// Example:
//
//	newStatus, err := currentStatus.Advance(order.Confirmed)
//	if err != nil {
//	    // Handle invalid transition
//	}
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(next) {
		return Unknown, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, s, next)
	}

	return next, nil
}
