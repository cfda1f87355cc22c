package queries

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var (
	ErrGetOwnerOrdersQueryIsNotConstructed = errors.New(
		"GetOwnerOrdersQuery must be created via NewGetOwnerOrdersQuery constructor",
	)
)

// GetOwnerOrdersQuery retrieves all orders placed by one purchasing account,
// most recent first, with each order's lines embedded.
//
// Example:
//
//	query, _ := queries.NewGetOwnerOrdersQuery(ownerID)
//	handler := queries.NewGetOwnerOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order history: %w", err)
//	}
//	fmt.Printf("Account has %d orders\n", len(orders))
type GetOwnerOrdersQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOwnerOrdersQuery creates a query for an account's order history.
// Returns an error if the owner identifier is invalid.
func NewGetOwnerOrdersQuery(ownerID kernel.UUID) (GetOwnerOrdersQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetOwnerOrdersQuery{}, err
	}

	return GetOwnerOrdersQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOwnerOrdersQueryIsNotConstructed if validation fails.
func (q GetOwnerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOwnerOrdersQueryIsNotConstructed)
}

// OwnerID returns the purchasing account identifier.
func (q GetOwnerOrdersQuery) OwnerID() kernel.UUID {
	return q.ownerID
}
