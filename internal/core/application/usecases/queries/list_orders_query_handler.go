package queries

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ListOrdersQueryHandler pages through a customer's orders.
//
// Example:
//
//	query, _ := NewListOrdersQuery("cust-42", 2, 20, nil)
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("page %d of %d\n", page.Page, page.Pages())
type ListOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewListOrdersQueryHandler(reader ports.OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: reader}
}

// Handle never returns a nil Orders slice; an empty page has Total 0.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	orders, total, err := h.reader.ListByOwner(ctx, query.CustomerID(), ports.OrderFilter{
		Status: query.Status(),
		Offset: query.Offset(),
		Limit:  query.Limit(),
	})
	if err != nil {
		return ListOrdersResponse{}, errs.NewPersistenceError("list orders", err)
	}

	response := ListOrdersResponse{
		Orders: orders,
		Total:  total,
		Page:   query.Page(),
		Limit:  query.Limit(),
	}
	if response.Orders == nil {
		response.Orders = []*order.Order{}
	}
	return response, nil
}
