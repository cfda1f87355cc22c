// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to the orders table with indexing for efficient
// querying by owner and status. Timestamps are owned by the domain, not GORM.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;index"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status      int             `gorm:"index"`
	CreatedAt   time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one persisted order line. Lines live in their own
// table keyed by the parent order; Position preserves the original cart
// sequence. The stored LineTotal is verified against unit price × quantity
// when the aggregate is reconstructed.
type OrderLineDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	Position    int             `gorm:"type:smallint"`
	ProductID   uuid.UUID       `gorm:"type:uuid"`
	ProductName string
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Quantity    int
	LineTotal   decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for order line entities.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation:
// one parent row plus one row per line.
func fromDomain(aggregate *order.Order) (OrderDTO, []OrderLineDTO) {
	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OwnerID:     aggregate.OwnerID().Bytes(),
		TotalAmount: aggregate.TotalAmount().Amount(),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}

	lines := aggregate.Lines()
	lineDTOs := make([]OrderLineDTO, 0, len(lines))
	for i, line := range lines {
		lineDTOs = append(lineDTOs, OrderLineDTO{
			ID:          uuid.New(),
			OrderID:     dto.ID,
			Position:    i,
			ProductID:   line.ProductID().Bytes(),
			ProductName: line.ProductName(),
			UnitPrice:   line.UnitPrice().Amount(),
			Quantity:    line.Quantity(),
			LineTotal:   line.Total().Amount(),
		})
	}

	return dto, lineDTOs
}

// toDomain converts database DTOs back to an order domain aggregate.
// Reconstruction runs the full invariant checks: stored line totals are
// verified against their inputs and the stored order total against the sum
// of line totals.
func toDomain(dto OrderDTO, lineDTOs []OrderLineDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(lineDTOs))
	for _, lineDTO := range lineDTOs {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		ownerID,
		lines,
		totalAmount,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

// lineToDomain converts one line row to a domain line, verifying the stored total.
func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Line{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Line{}, err
	}

	storedTotal, err := kernel.NewMoney(dto.LineTotal)
	if err != nil {
		return order.Line{}, err
	}

	return order.RestoreLine(productID, dto.ProductName, unitPrice, dto.Quantity, storedTotal)
}
