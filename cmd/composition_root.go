package cmd

import (
	"log/slog"

	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/natsbus"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config          Config
	logger          *slog.Logger
	gormDB          *gorm.DB
	registry        *prometheus.Registry
	businessMetrics *telemetry.BusinessMetrics
	uowFactory      *postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot wires the adapters around gormDB. broker may be nil, in
// which case events only feed the business metrics.
func NewCompositionRoot(config Config, logger *slog.Logger, gormDB *gorm.DB, broker natsbus.Conn) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	businessMetrics := telemetry.NewBusinessMetrics(registry, config.MetricsNamespace)

	var brokerPublisher ports.EventPublisher = natsbus.NoopPublisher{}
	if broker != nil {
		brokerPublisher = natsbus.NewPublisher(broker, config.NATSSubjectPrefix, logger)
	}
	publisher := telemetry.NewFanOutPublisher(businessMetrics, brokerPublisher)

	return &CompositionRoot{
		config:          config,
		logger:          logger,
		gormDB:          gormDB,
		registry:        registry,
		businessMetrics: businessMetrics,
		uowFactory:      postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderReader() ports.OrderReader {
	return orderrepo.NewGormOrderRepository(c.gormDB, nil)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	statsJob := jobs.NewOrderStatsJob(
		c.CreateGetOrderStatsQueryHandler(),
		c.businessMetrics,
		c.config.StatsSchedule,
		c.logger,
	)
	return jobs.NewJobManager(c.logger, statsJob)
}

func (c *CompositionRoot) CreateHTTPRouter() *echo.Echo {
	server := httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)
	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		Logger:        c.logger,
		ExposeDetails: !c.config.IsProduction(),
		Metrics:       telemetry.NewHTTPMetrics(c.registry, c.config.MetricsNamespace),
		Gatherer:      c.registry,
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
