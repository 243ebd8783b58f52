package cmd

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpin "github.com/j4ckson185/apk/internal/adapters/in/http"
	"github.com/j4ckson185/apk/internal/adapters/in/positioning"
	"github.com/j4ckson185/apk/internal/adapters/out/marketplace"
	"github.com/j4ckson185/apk/internal/adapters/out/postgres"
	"github.com/j4ckson185/apk/internal/adapters/out/postgres/orderrepo"
	"github.com/j4ckson185/apk/internal/adapters/out/redispub"
	appsync "github.com/j4ckson185/apk/internal/core/application/sync"
	"github.com/j4ckson185/apk/internal/core/application/tracking"
	"github.com/j4ckson185/apk/internal/core/application/usecases/commands"
	"github.com/j4ckson185/apk/internal/core/application/usecases/queries"
	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/services"
	"github.com/j4ckson185/apk/internal/jobs"
)

// CompositionRoot wires adapters to use cases. Everything downstream of here
// depends on interfaces only; this is the single place that knows concrete
// types.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	redisClient *redis.Client
	marketplace *marketplace.Client
	publisher   *redispub.Publisher
	positions   *positioning.Gateway
	tracker     *tracking.Tracker
	coordinator *appsync.Coordinator
	logger      *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) *CompositionRoot {
	httpClient := &nethttp.Client{Timeout: 15 * time.Second}

	tokens := marketplace.NewClientCredentialsTokenProvider(
		httpClient,
		config.MarketplaceTokenURL,
		config.MarketplaceClientID,
		config.MarketplaceClientSecret,
	)

	positions := positioning.NewGateway()

	root := &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		redisClient: redisClient,
		marketplace: marketplace.NewClient(httpClient, config.MarketplaceBaseURL, tokens, logger),
		publisher:   redispub.NewPublisher(redisClient),
		positions:   positions,
		tracker:     tracking.NewTracker(positions, config.SignificantChangeMeters, logger),
		logger:      logger,
	}

	feed := redispub.NewFeed(redisClient, root.createOrderRepository(), logger)
	root.coordinator = appsync.NewCoordinator(feed, logger)

	return root
}

// PositionGateway exposes the inbound GPS fix entry point.
func (c *CompositionRoot) PositionGateway() *positioning.Gateway {
	return c.positions
}

// Tracker exposes the significant-change location tracker.
func (c *CompositionRoot) Tracker() *tracking.Tracker {
	return c.tracker
}

// Coordinator exposes the real-time order sync coordinator.
func (c *CompositionRoot) Coordinator() *appsync.Coordinator {
	return c.coordinator
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAcceptAllOrdersCommandHandler() commands.AcceptAllOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptAllOrdersCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(f, c.marketplace, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConcludeOrderCommandHandler() commands.ConcludeOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConcludeOrderCommandHandler(f, c.marketplace, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateFinishOrderCommandHandler() commands.FinishOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFinishOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.CourierLocationUoWFactory = FuncCourierLocationUoWFactory(func() commands.CourierLocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateDeactivateCourierCommandHandler() commands.DeactivateCourierCommandHandler {
	var f commands.CourierLocationUoWFactory = FuncCourierLocationUoWFactory(func() commands.CourierLocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeactivateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCompletedOrdersReportQueryHandler() queries.GetCompletedOrdersReportQueryHandler {
	return queries.NewGetCompletedOrdersReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteQueryHandler() queries.GetRouteQueryHandler {
	return queries.NewGetRouteQueryHandler(c.createOrderRepository(), services.NewRoutePlanner())
}

// CreateHTTPServer assembles the inbound HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateAcceptOrderCommandHandler(),
		c.CreateAcceptAllOrdersCommandHandler(),
		c.CreateDispatchOrderCommandHandler(),
		c.CreateConcludeOrderCommandHandler(),
		c.CreateFinishOrderCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetCompletedOrdersReportQueryHandler(),
		c.CreateGetRouteQueryHandler(),
		c.positions,
	)
}

// CreateJobManager assembles the background jobs for the configured courier.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.config.CourierID,
		c.tracker,
		c.CreateReportLocationCommandHandler(),
		c.logger,
	)
}

// createOrderRepository builds a standalone read-side repository. Writes go
// through units of work, so change tracking is a no-op here.
func (c *CompositionRoot) createOrderRepository() *orderrepo.GormOrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, noopAggregateTracker{})
}

type noopAggregateTracker struct{}

func (noopAggregateTracker) TrackAggregate(kernel.UUID, any) {}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierLocationUoWFactory func() commands.CourierLocationUoW

func (f FuncCourierLocationUoWFactory) Create() commands.CourierLocationUoW {
	return f()
}
