package cmd

import (
	"log/slog"
	"time"

	httpadapter "candydelivery/internal/adapters/in/http"
	"candydelivery/internal/adapters/out/postgres"
	"candydelivery/internal/core/application/usecases/commands"
	"candydelivery/internal/core/application/usecases/queries"
	"candydelivery/internal/core/ports"
	"candydelivery/internal/jobs"
	"candydelivery/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      ports.Cache
	publisher  ports.EventPublisher
	registry   *prometheus.Registry
	recorder   *metrics.Recorder
	logger     *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	cache ports.Cache,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      cache,
		publisher:  publisher,
		registry:   registry,
		recorder:   metrics.NewRecorder(registry),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateCouriersCommandHandler() *commands.CreateCouriersCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateCouriersCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateCreateOrdersCommandHandler() *commands.CreateOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrdersCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateAssignOrdersCommandHandler() commands.AssignOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCourierCommandHandler() commands.UpdateCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreatePublishOutboxCommandHandler() commands.PublishOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOutboxCommandHandler(f, c.publisher, c.cfg.KafkaEventsTopic)
}

// CreateGetCourierQueryHandler reads through repositories of a unit of work that is
// never begun, so they use the plain connection.
func (c *CompositionRoot) CreateGetCourierQueryHandler() queries.GetCourierQueryHandler {
	reader := c.uowFactory.Create()
	return queries.NewGetCourierQueryHandler(
		reader.CourierRepository(),
		reader.OrderRepository(),
		c.cache,
		c.cfg.CourierCacheTTL,
	)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		httpadapter.Handlers{
			CreateCouriers:  c.CreateCreateCouriersCommandHandler(),
			CreateOrders:    c.CreateCreateOrdersCommandHandler(),
			AssignOrders:    c.CreateAssignOrdersCommandHandler(),
			UpdateCourier:   c.CreateUpdateCourierCommandHandler(),
			CompleteOrder:   c.CreateCompleteOrderCommandHandler(),
			GetCourier:      c.CreateGetCourierQueryHandler(),
			GetActiveOrders: c.CreateGetActiveOrdersQueryHandler(),
		},
		c.recorder,
		c.registry,
		c.logger,
		time.Now,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := jobs.NewOutboxRelayJob(
		c.CreatePublishOutboxCommandHandler(),
		c.cfg.OutboxRelaySchedule,
		c.cfg.OutboxBatchSize,
		c.recorder,
		c.logger,
	)
	return jobs.NewJobManager(relay)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
