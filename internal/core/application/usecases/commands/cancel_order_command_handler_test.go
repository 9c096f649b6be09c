package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	setup := func(t *testing.T, existing *order.Order, customerID string, getErr error) (*MockOrderRepository, *MockOrderUoW, *MockOrderUoWFactory) {
		t.Helper()
		ctx := t.Context()

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("OrderRepository").Return(repo)
		if getErr != nil {
			repo.On("GetForOwner", ctx, existing.ID(), customerID).Return(nil, getErr)
		} else {
			repo.On("GetForOwner", ctx, existing.ID(), customerID).Return(existing, nil)
		}
		uow.On("Rollback", ctx).Return(nil)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow)
		return repo, uow, factory
	}

	t.Run("should cancel pending order and refund payment", func(t *testing.T) {
		ctx := t.Context()
		existing := existingOrder(t, "customer-1", order.Pending)
		repo, uow, factory := setup(t, existing, "customer-1", nil)
		repo.On("Update", ctx, existing).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		cmd, _ := commands.NewCancelOrderCommand(existing.ID(), "customer-1")

		cancelled, err := commands.NewCancelOrderCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, cancelled)
		assert.Equal(t, order.Cancelled, cancelled.Status())
		assert.Equal(t, order.PaymentRefunded, cancelled.PaymentStatus())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should refuse delivered order", func(t *testing.T) {
		ctx := t.Context()
		existing := existingOrder(t, "customer-1", order.Delivered)
		repo, _, factory := setup(t, existing, "customer-1", nil)
		cmd, _ := commands.NewCancelOrderCommand(existing.ID(), "customer-1")

		cancelled, err := commands.NewCancelOrderCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.EqualError(t, err, "Cannot cancel a delivered order")
		assert.Nil(t, cancelled)
		assert.Equal(t, order.Delivered, existing.Status())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should refuse already cancelled order", func(t *testing.T) {
		ctx := t.Context()
		existing := existingOrder(t, "customer-1", order.Cancelled)
		_, _, factory := setup(t, existing, "customer-1", nil)
		cmd, _ := commands.NewCancelOrderCommand(existing.ID(), "customer-1")

		_, err := commands.NewCancelOrderCommandHandler(factory).Handle(ctx, cmd)

		assert.EqualError(t, err, "Order is already cancelled")
	})

	t.Run("should return absent result for unknown order", func(t *testing.T) {
		ctx := t.Context()
		existing := existingOrder(t, "customer-1", order.Pending)
		_, uow, factory := setup(t, existing, "customer-2", errs.NewObjectNotFoundError("order", existing.ID().String()))
		cmd, _ := commands.NewCancelOrderCommand(existing.ID(), "customer-2")

		cancelled, err := commands.NewCancelOrderCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Nil(t, cancelled)
		assert.Equal(t, order.Pending, existing.Status())
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should wrap commit failure", func(t *testing.T) {
		ctx := t.Context()
		existing := existingOrder(t, "customer-1", order.Shipped)
		repo, uow, factory := setup(t, existing, "customer-1", nil)
		repo.On("Update", ctx, existing).Return(nil)
		uow.On("Commit", ctx).Return(errors.New("serialization failure"))
		cmd, _ := commands.NewCancelOrderCommand(existing.ID(), "customer-1")

		_, err := commands.NewCancelOrderCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPersistence)
		assert.Contains(t, err.Error(), "commit transaction")
	})
}
