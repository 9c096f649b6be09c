package queries

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errs.NewValueIsRequiredError(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// GetOrderStatsQuery aggregates all orders by status. It is an operator
// query and is not scoped to a customer.
type GetOrderStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderStatsQuery() GetOrderStatsQuery {
	return GetOrderStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// StatusStats is the number of orders in one status and the sum of their totals.
type StatusStats struct {
	Count  int64
	Amount kernel.Money
}

// GetOrderStatsQueryResponse has an entry for every valid status, zero when
// no order is in it.
type GetOrderStatsQueryResponse struct {
	ByStatus map[order.Status]StatusStats
}

// Total is the number of orders across all statuses.
func (r GetOrderStatsQueryResponse) Total() int64 {
	var total int64
	for _, s := range r.ByStatus {
		total += s.Count
	}
	return total
}
