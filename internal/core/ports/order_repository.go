// Package ports defines the contracts between the order core and its
// infrastructure adapters.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderFilter narrows and pages ListByOwner.
type OrderFilter struct {
	// Status restricts results to one status when set.
	Status *order.Status
	Offset int
	Limit  int
}

// OrderReader is the read side of the order store. Every lookup is scoped to
// an owner; an order belonging to someone else is indistinguishable from a
// missing one.
type OrderReader interface {
	// GetForOwner returns the order if it exists and belongs to customerID.
	// Otherwise it returns an *errs.ObjectNotFoundError.
	GetForOwner(ctx context.Context, id kernel.UUID, customerID string) (*order.Order, error)

	// ListByOwner returns one page of the customer's orders, newest first,
	// together with the number of orders matching the filter.
	//
	// Example:
	//   orders, total, err := repo.ListByOwner(ctx, "cust-42", ports.OrderFilter{Offset: 0, Limit: 10})
	ListByOwner(ctx context.Context, customerID string, filter OrderFilter) ([]*order.Order, int64, error)
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	OrderReader

	// Add persists a new order with its items and writes the store
	// timestamps back into the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, payment status, tracking number and total.
	// It fails if the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error
}
