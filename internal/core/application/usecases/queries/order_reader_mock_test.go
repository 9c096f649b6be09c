package queries_test

import (
	"context"
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) GetForOwner(ctx context.Context, id kernel.UUID, customerID string) (*order.Order, error) {
	args := m.Called(ctx, id, customerID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) ListByOwner(
	ctx context.Context,
	customerID string,
	filter ports.OrderFilter,
) ([]*order.Order, int64, error) {
	args := m.Called(ctx, customerID, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func sampleOrder(t *testing.T, customerID string) *order.Order {
	t.Helper()

	price, err := kernel.MoneyFromString("29.99")
	require.NoError(t, err)
	item, err := order.NewItem("sku-1", "Mug", 2, price)
	require.NoError(t, err)
	address, err := kernel.NewAddress("1 Main St", "Springfield", "IL", "US", "62701")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.Item{item}, address, order.CreditCard)
	require.NoError(t, err)
	return o
}
