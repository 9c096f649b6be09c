// Package queries contains read-only operations over customer orders.
package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errs.NewValueIsRequiredError(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order of one customer.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, "cust-42")
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, query)
//	if o == nil && err == nil {
//	    // not found, or not this customer's order
//	}
type GetOrderQuery struct {
	orderID    kernel.UUID
	customerID string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, customerID string) (GetOrderQuery, error) {
	var customerErr error
	if customerID == "" {
		customerErr = errs.NewValueIsRequiredError("customerId")
	}
	if err := errors.Join(orderID.Validate(), customerErr); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:    orderID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) CustomerID() string {
	return q.customerID
}
