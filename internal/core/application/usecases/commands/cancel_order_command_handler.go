package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels orders and refunds their payment.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the cancelled order, or nil when the customer has no such order.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, cmd.OrderID(), cmd.CustomerID(), (*order.Order).Cancel)
}
