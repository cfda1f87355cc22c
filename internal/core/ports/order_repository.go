// Package ports defines repository and collaborator interfaces for the order domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders together
// with their line items.
type OrderRepository interface {
	// Add persists a new order aggregate together with all of its lines.
	// The order must be valid and not already exist in the repository.
	//
	// The write is all-or-nothing from the caller's point of view: when the
	// repository runs outside a surrounding transaction it compensates a
	// failed line write by removing the already-written parent record, so no
	// caller ever observes an order without lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus persists a status transition already applied to the aggregate.
	//
	// The write is conditioned on the status the caller observed before the
	// transition (compare-and-swap): it succeeds only if the stored status
	// still equals previous. When a concurrent writer got there first, the
	// update affects no rows and order.ErrInvalidStatusTransition is returned;
	// the caller may re-read the order and retry.
	UpdateStatus(ctx context.Context, aggregate *order.Order, previous order.Status) error

	// Get retrieves an order aggregate by its unique identifier,
	// including all of its lines.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPendingBefore retrieves orders still in Pending status that were
	// created before the cutoff. Used by the stale-order cancellation job.
	GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
