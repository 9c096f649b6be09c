package commands_test

import (
	"context"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetForOwner(ctx context.Context, id kernel.UUID, customerID string) (*order.Order, error) {
	args := m.Called(ctx, id, customerID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByOwner(
	ctx context.Context,
	customerID string,
	filter ports.OrderFilter,
) ([]*order.Order, int64, error) {
	args := m.Called(ctx, customerID, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func existingOrder(t *testing.T, customerID string, status order.Status) *order.Order {
	t.Helper()

	price, err := kernel.MoneyFromString("29.99")
	require.NoError(t, err)
	item, err := order.NewItem("sku-1", "Mug", 2, price)
	require.NoError(t, err)
	address, err := kernel.NewAddress("1 Main St", "Springfield", "IL", "US", "62701")
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.Snapshot{
		ID:              kernel.NewUUID(),
		CustomerID:      customerID,
		Items:           []order.Item{item},
		ShippingAddress: address,
		PaymentMethod:   order.CreditCard,
		Status:          status,
		PaymentStatus:   order.PaymentPending,
	})
	require.NoError(t, err)
	return o
}
