// Package postgres provides the GORM-based unit of work for the order store.
//
// A unit of work wraps one database transaction. Repositories handed out by
// it run inside that transaction and register every aggregate they write.
// After a successful Commit the recorded domain events of those aggregates
// are handed to the configured ports.EventPublisher; nothing is published for
// a rolled back transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // publishes OrderCreated
package postgres

import (
	"context"
	"log/slog"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM handle
// and one event publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
		tracked:   make([]*order.Order, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// written inside it. It is not safe for concurrent use.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
	tracked   []*order.Order
}

// Begin starts the transaction. Calling it twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the changes permanent and then publishes the domain events
// of every tracked aggregate. Publish failures are logged, not returned: the
// data is already committed.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.tracked = uow.tracked[:0]
		return err
	}

	uow.publishTracked(ctx)
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates.
// Returns gorm.ErrInvalidTransaction when no transaction is active, which is
// the case after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = uow.tracked[:0]
	return err
}

// OrderRepository returns a repository bound to the active transaction, or
// to the plain connection when Begin has not been called.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate registers an aggregate written in this unit of work.
// Registering the same aggregate twice keeps one entry.
func (uow *GormUnitOfWork) TrackAggregate(aggregate *order.Order) {
	for _, tracked := range uow.tracked {
		if tracked == aggregate {
			return
		}
	}
	uow.tracked = append(uow.tracked, aggregate)
}

func (uow *GormUnitOfWork) publishTracked(ctx context.Context) {
	tracked := uow.tracked
	uow.tracked = make([]*order.Order, 0)

	if uow.publisher == nil {
		return
	}

	for _, aggregate := range tracked {
		events := aggregate.DomainEvents()
		if len(events) == 0 {
			continue
		}

		if err := uow.publisher.Publish(ctx, events...); err != nil {
			uow.logger.ErrorContext(ctx, "Failed to publish domain events",
				"order_id", aggregate.ID().String(),
				"events", len(events),
				"error", err,
			)
		}
		aggregate.ClearDomainEvents()
	}
}
