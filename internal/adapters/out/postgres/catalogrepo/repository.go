// Package catalogrepo provides the GORM-based adapter for product catalog lookups.
// The order service reads product names and list prices at order time to take
// immutable snapshots onto order lines; catalog writes stay with the catalog
// system, except for a seeding helper used in local setups.
package catalogrepo

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductDTO represents the database structure for catalog products.
type ProductDTO struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name  string          `gorm:"type:varchar(255);not null"`
	Price decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName specifies the database table name for product entities.
// Overrides GORM's default naming convention to use "products" instead of "product_dtos".
func (ProductDTO) TableName() string {
	return "products"
}

// GormProductCatalog implements ports.ProductCatalog over PostgreSQL.
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a new GORM product catalog.
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// GetProduct retrieves the current snapshot of a product by its identifier.
// Returns errs.ObjectNotFoundError when no such product exists.
func (r *GormProductCatalog) GetProduct(ctx context.Context, id kernel.UUID) (ports.ProductSnapshot, error) {
	var dto ProductDTO
	err := r.db.WithContext(ctx).
		Where("id = ?", id.Bytes()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProductSnapshot{}, errs.NewObjectNotFoundError("productId", id)
		}
		return ports.ProductSnapshot{}, err
	}

	return toSnapshot(dto)
}

// Add persists a product record. Used for seeding development environments
// and integration tests.
func (r *GormProductCatalog) Add(ctx context.Context, id kernel.UUID, name string, price kernel.Money) error {
	dto := ProductDTO{
		ID:    id.Bytes(),
		Name:  name,
		Price: price.Amount(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// toSnapshot converts a product row to its domain-facing snapshot.
func toSnapshot(dto ProductDTO) (ports.ProductSnapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ProductSnapshot{}, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return ports.ProductSnapshot{}, err
	}

	return ports.ProductSnapshot{
		ID:    id,
		Name:  dto.Name,
		Price: price,
	}, nil
}
