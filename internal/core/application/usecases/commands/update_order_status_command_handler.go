package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler applies generic status updates.
//
// Example:
//
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // "Cannot update a cancelled order" or "Cannot update a delivered order"
//	case err != nil:
//	    return err
//	case updated == nil:
//	    // no such order for this customer
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the updated order, or nil when the customer has no such order.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, cmd.OrderID(), cmd.CustomerID(), func(o *order.Order) error {
		return o.UpdateStatus(cmd.Status())
	})
}
