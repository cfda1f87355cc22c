package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and all of its lines to the database.
//
// The parent row is written first, then the line rows. When the line write
// fails and no surrounding transaction will roll the parent back, the parent
// is compensated (deleted) before the failure is reported, so no caller ever
// observes a lineless order. The compensation deletes are idempotent and safe
// to retry. Inside a transaction the deletes are subsumed by the rollback.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, lineDTOs := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&lineDTOs).Error; err != nil {
		return errors.Join(err, r.compensateParent(ctx, dto.ID))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// compensateParent removes a parent order row (and any lines that did get
// written) after a failed line write.
func (r *GormOrderRepository) compensateParent(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&OrderLineDTO{}, "order_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id).Error
}

// UpdateStatus persists a status transition with a compare-and-swap on the
// previously observed status. Only the status and updated_at columns change.
//
// When no row matches (the status moved under us, or the order vanished),
// order.ErrInvalidStatusTransition is returned and nothing is written.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	aggregate *order.Order,
	previous order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(previous)).
		Updates(map[string]any{
			"status":     int(aggregate.Status()),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: order %s is no longer %s",
			order.ErrInvalidStatusTransition, aggregate.ID(), previous)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	lineDTOs, err := r.getLines(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, lineDTOs)
}

// GetAllPendingBefore retrieves orders in Pending status created before the cutoff.
func (r *GormOrderRepository) GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND created_at < ?", int(order.Pending), cutoff).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		lineDTOs, err := r.getLines(ctx, dto.ID)
		if err != nil {
			return nil, err
		}

		o, err := toDomain(dto, lineDTOs)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// getLines loads the line rows of one order in their original cart sequence.
func (r *GormOrderRepository) getLines(ctx context.Context, orderID uuid.UUID) ([]OrderLineDTO, error) {
	var lineDTOs []OrderLineDTO
	err := r.db.WithContext(ctx).
		Order("position").
		Find(&lineDTOs, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return lineDTOs, nil
}
