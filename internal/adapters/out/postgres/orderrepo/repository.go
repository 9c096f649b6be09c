package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is implemented by the unit of work that publishes the
// events of every written aggregate after commit.
type aggregateTracker interface {
	TrackAggregate(aggregate *order.Order)
}

// NewGormOrderRepository creates a repository bound to db. tracker may be nil
// for read-only use.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its items in one statement batch.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	now := time.Now().UTC().Truncate(time.Microsecond)
	dto.CreatedAt = now
	dto.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	aggregate.SetTimestamps(dto.CreatedAt, dto.UpdatedAt)
	r.track(aggregate)
	return nil
}

// Update writes the mutable columns of an existing order. Items are never
// changed after creation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	now := time.Now().UTC().Truncate(time.Microsecond)

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":          dto.Status,
			"payment_status":  dto.PaymentStatus,
			"tracking_number": dto.TrackingNumber,
			"total_amount":    dto.TotalAmount,
			"updated_at":      now,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	aggregate.SetTimestamps(aggregate.CreatedAt(), now)
	r.track(aggregate)
	return nil
}

// GetForOwner loads an order with its items. A foreign order is reported as
// not found.
func (r *GormOrderRepository) GetForOwner(ctx context.Context, id kernel.UUID, customerID string) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByPosition).
		Where("id = ? AND customer_id = ?", id.Bytes(), customerID).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByOwner returns one page of the customer's orders, newest first.
func (r *GormOrderRepository) ListByOwner(
	ctx context.Context,
	customerID string,
	filter ports.OrderFilter,
) ([]*order.Order, int64, error) {
	matching := func(db *gorm.DB) *gorm.DB {
		db = db.Where("customer_id = ?", customerID)
		if filter.Status != nil {
			db = db.Where("status = ?", filter.Status.String())
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Scopes(matching).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Scopes(matching).
		Preload("Items", orderItemsByPosition).
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&dtos).Error
	if err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}

	return orders, total, nil
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate)
	}
}

func orderItemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
