package queries

import (
	"errors"
	"math"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = math.MaxInt32
)

var ErrListOrdersQueryIsNotConstructed = errs.NewValueIsRequiredError(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through a customer's orders, newest first.
//
// Zero page and limit select the defaults (page 1, 10 per page); a limit
// above MaxLimit is capped. Negative values and pages past MaxPage are
// rejected so the offset never overflows.
type ListOrdersQuery struct {
	customerID string
	page       int
	limit      int
	status     *order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(customerID string, page, limit int, status *order.Status) (ListOrdersQuery, error) {
	var problems []error
	if customerID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("customerId"))
	}
	if page < 0 || page > MaxPage {
		problems = append(problems, errs.NewValueIsOutOfRangeError("page", page, 1, MaxPage))
	}
	if limit < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit))
	}
	if status != nil {
		problems = append(problems, status.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return ListOrdersQuery{}, err
	}

	if page == 0 {
		page = DefaultPage
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	q := ListOrdersQuery{
		customerID: customerID,
		page:       page,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}
	if status != nil {
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) CustomerID() string {
	return q.customerID
}

func (q ListOrdersQuery) Page() int {
	return q.page
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

// Status returns the status filter, or nil for all statuses.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// Offset is the number of orders skipped before this page.
func (q ListOrdersQuery) Offset() int {
	return (q.page - 1) * q.limit
}

// ListOrdersResponse is one page of orders plus the size of the full result.
type ListOrdersResponse struct {
	Orders []*order.Order
	Total  int64
	Page   int
	Limit  int
}

// Pages is ceil(Total / Limit).
func (r ListOrdersResponse) Pages() int {
	if r.Limit <= 0 {
		return 0
	}
	return int((r.Total + int64(r.Limit) - 1) / int64(r.Limit))
}
