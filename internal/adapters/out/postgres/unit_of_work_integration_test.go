package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// recordingPublisher keeps every published event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []order.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...order.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.EventName())
	}
	return names
}

type orderUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f.factory.Create()
}

// UnitOfWorkIntegrationTestSuite checks transaction handling and post-commit
// event publishing against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database  *testdb.Database
	publisher *recordingPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := testdb.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.publisher = &recordingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.database.Gorm, suite.publisher, logger)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx), "Rollback after commit has no transaction")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPublishesEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Empty(suite.publisher.names(), "Nothing is published before commit")

	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal([]string{order.EventOrderCreated}, suite.publisher.names())
	suite.Empty(o.DomainEvents(), "Published events are cleared from the aggregate")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChangesAndEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	_, err := uow.OrderRepository().GetForOwner(ctx, o.ID(), o.CustomerID())
	suite.Require().NoError(err, "Order is visible inside its transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().GetForOwner(ctx, o.ID(), o.CustomerID())
	suite.Require().Error(err, "Order should not exist after rollback")
	suite.Empty(suite.publisher.names())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PublishFailureDoesNotFailCommit() {
	ctx := context.Background()
	suite.publisher.err = errors.New("broker down")
	uow := suite.factory.Create()
	o := createTestOrder(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	suite.Require().NoError(uow.Commit(ctx))

	_, err := suite.factory.Create().OrderRepository().GetForOwner(ctx, o.ID(), o.CustomerID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	order1 := createTestOrder(suite)
	order2 := createTestOrder(suite)

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().GetForOwner(ctx, order2.ID(), order2.CustomerID())
	suite.Require().Error(err, "UOW1 should not see order2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	repo := suite.factory.Create().OrderRepository()
	_, err = repo.GetForOwner(ctx, order1.ID(), order1.CustomerID())
	suite.Require().NoError(err, "Order1 should persist after commit")
	_, err = repo.GetForOwner(ctx, order2.ID(), order2.CustomerID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_OrderLifecycleWorkflow drives the command handlers through
// the real unit of work: create, ship, then try to cancel after delivery.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderLifecycleWorkflow() {
	ctx := context.Background()
	factory := orderUoWFactory{factory: suite.factory}

	createCmd, err := commands.NewCreateOrderCommand("customer-1",
		[]commands.OrderItemInput{{ProductID: "sku-1", Name: "Mug", Quantity: 2, Price: decimal.RequireFromString("29.99")}},
		commands.ShippingAddressInput{Street: "1 Main St", City: "Springfield", State: "IL", Country: "US", ZipCode: "62701"},
		"CREDIT_CARD",
	)
	suite.Require().NoError(err)
	created, err := commands.NewCreateOrderCommandHandler(factory).Handle(ctx, createCmd)
	suite.Require().NoError(err)
	suite.Equal("59.98", created.TotalAmount().String())

	shipCmd, err := commands.NewUpdateOrderStatusCommand(created.ID(), "customer-1", order.Shipped)
	suite.Require().NoError(err)
	shipped, err := commands.NewUpdateOrderStatusCommandHandler(factory).Handle(ctx, shipCmd)
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, shipped.Status())
	suite.Equal(order.PaymentPending, shipped.PaymentStatus())

	foreignCmd, err := commands.NewCancelOrderCommand(created.ID(), "customer-2")
	suite.Require().NoError(err)
	foreign, err := commands.NewCancelOrderCommandHandler(factory).Handle(ctx, foreignCmd)
	suite.Require().NoError(err)
	suite.Nil(foreign, "Another customer's order is absent")

	deliverCmd, err := commands.NewUpdateOrderStatusCommand(created.ID(), "customer-1", order.Delivered)
	suite.Require().NoError(err)
	_, err = commands.NewUpdateOrderStatusCommandHandler(factory).Handle(ctx, deliverCmd)
	suite.Require().NoError(err)

	cancelCmd, err := commands.NewCancelOrderCommand(created.ID(), "customer-1")
	suite.Require().NoError(err)
	_, err = commands.NewCancelOrderCommandHandler(factory).Handle(ctx, cancelCmd)
	suite.Require().EqualError(err, "Cannot cancel a delivered order")

	stored, err := suite.factory.Create().OrderRepository().GetForOwner(ctx, created.ID(), "customer-1")
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, stored.Status())
	suite.Equal(order.PaymentPending, stored.PaymentStatus())

	suite.Equal([]string{
		order.EventOrderCreated,
		order.EventOrderStatusChanged,
		order.EventOrderStatusChanged,
	}, suite.publisher.names())
}

func createTestOrder(suite *UnitOfWorkIntegrationTestSuite) *order.Order {
	price, err := kernel.MoneyFromString("12.50")
	suite.Require().NoError(err)
	item, err := order.NewItem("sku-1", "Mug", 1, price)
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("1 Main St", "Springfield", "IL", "US", "62701")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", []order.Item{item}, address, order.PayPal)
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
