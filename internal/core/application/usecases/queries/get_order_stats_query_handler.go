package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler reads per-status totals straight from the
// orders table.
//
// Example:
//
//	stats, err := handler.Handle(ctx, NewGetOrderStatsQuery())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d shipped\n", stats.ByStatus[order.Shipped].Count)
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

func (h GetOrderStatsQueryHandler) Handle(ctx context.Context, query GetOrderStatsQuery) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	response := GetOrderStatsQueryResponse{
		ByStatus: make(map[order.Status]StatusStats, len(order.Statuses())),
	}
	for _, s := range order.Statuses() {
		response.ByStatus[s] = StatusStats{Amount: kernel.ZeroMoney()}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(total_amount), 0)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int64
		var sum decimal.Decimal

		if err = rows.Scan(&name, &count, &sum); err != nil {
			return GetOrderStatsQueryResponse{}, err
		}

		status, parseErr := order.ParseStatus(name)
		if parseErr != nil {
			return GetOrderStatsQueryResponse{}, parseErr
		}
		amount, moneyErr := kernel.NewMoney(sum)
		if moneyErr != nil {
			return GetOrderStatsQueryResponse{}, moneyErr
		}

		response.ByStatus[status] = StatusStats{Count: count, Amount: amount}
	}

	if err = rows.Err(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	return response, nil
}
