package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// transitionOrder runs a status mutation on one owned order inside a unit of
// work. It returns (nil, nil) when the order does not exist or belongs to
// another customer. Domain errors from mutate are returned unchanged.
func transitionOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	customerID string,
	mutate func(*order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.NewPersistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.GetForOwner(ctx, orderID, customerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil //nolint:nilnil // absent order
	}
	if err != nil {
		return nil, errs.NewPersistenceError("load order", err)
	}

	if err = mutate(aggregate); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, errs.NewPersistenceError("update order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewPersistenceError("commit transaction", err)
	}

	return aggregate, nil
}
