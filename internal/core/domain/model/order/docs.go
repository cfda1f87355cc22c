// Package order provides domain entities and business logic for order placement
// and lifecycle management in the e-commerce system. It implements the Order
// aggregate root with line items, monetary totals, and status transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, total, and lifecycle
//   - Line: A value object holding one product-quantity-price entry with prices snapshotted at order time
//   - Status: A state machine that enforces valid fulfillment status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, an owner, and at least one line
//   - The total amount always equals the exact sum of line totals
//   - Status follows the workflow: pending -> confirmed -> preparing -> out_for_delivery -> delivered
//   - Cancellation is allowed from any non-terminal status
//   - Delivered and cancelled orders accept no further transitions
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
