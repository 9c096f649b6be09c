package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand asks to cancel one of the customer's orders.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, customerID string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	var customerErr error
	if customerID == "" {
		customerErr = errs.NewValueIsRequiredError("customerId")
	}

	if err := errors.Join(orderID.Validate(), customerErr); err != nil {
		return CancelOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.customerID = customerID
	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) CustomerID() string {
	return c.customerID
}
