// Package queries contains read-only operations over the order store.
// Implements the Query side of the CQRS architecture: handlers read directly
// from the database with raw SQL and return dedicated response types, never
// domain aggregates.
package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order with its embedded lines.
//
// Example:
//
//	query, _ := queries.NewGetOrderQuery(orderID)
//	handler := queries.NewGetOrderQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", resp.ID, resp.Status)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order by its identifier.
// Returns an error if the identifier is invalid.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderLineResponse represents one line of an order in read-side responses.
// Prices are the snapshots taken at order time.
type OrderLineResponse struct {
	ProductID   kernel.UUID
	ProductName string
	UnitPrice   kernel.Money
	Quantity    int
	LineTotal   kernel.Money
}

// OrderResponse represents a complete order in read-side responses,
// with all lines embedded.
type OrderResponse struct {
	ID          kernel.UUID
	OwnerID     kernel.UUID
	Lines       []OrderLineResponse
	TotalAmount kernel.Money
	Status      order.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
