package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
)

// AccountDirectory resolves purchasing accounts. The order service treats the
// account system as an opaque collaborator: it only needs to know whether an
// owner identifier references an existing account.
type AccountDirectory interface {
	// Exists reports whether the account exists.
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
}

// ProductSnapshot carries the catalog data captured on an order line at order
// time: the product's current name and list price.
type ProductSnapshot struct {
	ID    kernel.UUID
	Name  string
	Price kernel.Money
}

// ProductCatalog resolves catalog products at order time.
type ProductCatalog interface {
	// GetProduct retrieves the current snapshot of a product.
	// Returns errs.ObjectNotFoundError when the product does not exist.
	GetProduct(ctx context.Context, id kernel.UUID) (ProductSnapshot, error)
}
