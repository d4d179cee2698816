package cmd

import (
	"log/slog"

	httpin "ordering/internal/adapters/in/http"
	stanin "ordering/internal/adapters/in/natsstan"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/pgerr"
	"ordering/internal/adapters/out/tradegecko"
	"ordering/internal/core/application/dedup"
	"ordering/internal/core/application/reactor"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		clock:      clk,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateDedupStore() *dedup.Store {
	return dedup.NewStore(c.uowFactory, c.clock, c.logger, c.config.IdempotencyWaitMaxRetries,
		dedup.WithRetryable(pgerr.IsRetryable))
}

func (c *CompositionRoot) CreateDispatcher() *commands.Dispatcher {
	createOrder := commands.NewCreateOrderCommandHandler(c.clock)
	cancelOrder := commands.NewCancelOrderCommandHandler(c.clock)
	shipOrder := commands.NewShipOrderCommandHandler(c.clock)
	createDraft := commands.NewCreateOrderDraftCommandHandler()

	return commands.NewDispatcher(c.CreateDedupStore(), c.logger, map[commands.CommandType]commands.Route{
		commands.CreateOrder:      {Handler: commands.Bind[commands.CreateOrderCommand](&createOrder), Deduplicated: true},
		commands.CancelOrder:      {Handler: commands.Bind[commands.CancelOrderCommand](&cancelOrder), Deduplicated: true},
		commands.ShipOrder:        {Handler: commands.Bind[commands.ShipOrderCommand](&shipOrder), Deduplicated: true},
		commands.CreateOrderDraft: {Handler: commands.Bind[commands.CreateOrderDraftCommand](&createDraft)},
	})
}

func (c *CompositionRoot) CreateReactor() *reactor.Reactor {
	return reactor.NewReactor(c.CreateDedupStore(), c.logger, reactor.Handlers(c.clock))
}

func (c *CompositionRoot) CreateServer() (*httpin.Server, error) {
	tradeGecko, err := c.CreateTradeGeckoClient()
	if err != nil {
		return nil, err
	}

	return httpin.NewServer(
		c.CreateDispatcher(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrdersForUserQueryHandler(),
		c.CreateGetCardTypesQueryHandler(),
		tradeGecko,
		c.logger,
	), nil
}

func (c *CompositionRoot) CreateTradeGeckoClient() (*tradegecko.Client, error) {
	return tradegecko.NewClient(tradegecko.Config{
		BaseURL: c.config.TradeGeckoBaseURL,
		Token:   c.config.TradeGeckoToken,
		Timeout: c.config.TradeGeckoTimeout,
	}, nil)
}

func (c *CompositionRoot) CreateConsumer(conn stanin.Subscriber) *stanin.Consumer {
	return stanin.NewConsumer(conn, c.CreateReactor(), stanin.Config{
		QueueGroup:     c.config.StanQueueGroup,
		Durable:        c.config.StanDurable,
		AckWait:        c.config.StanAckWait,
		HandlerTimeout: c.config.HandlerTimeout,
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relayJob, err := jobs.NewOutboxRelayJob(c.createRelayOutboxCommandHandler(), c.config.OutboxBatchSize, c.logger)
	if err != nil {
		return nil, err
	}
	graceJob, err := jobs.NewGracePeriodJob(
		c.createConfirmGracePeriodCommandHandler(), c.config.GracePeriod, c.config.OutboxBatchSize, c.logger)
	if err != nil {
		return nil, err
	}
	retentionJob, err := jobs.NewIdempotencyRetentionJob(
		c.createPurgeIdempotencyRecordsCommandHandler(), c.config.IdempotencyRetention, c.logger)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(relayJob, graceJob, retentionJob), nil
}

func (c *CompositionRoot) createRelayOutboxCommandHandler() *commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRelayOutboxCommandHandler(f, c.publisher)
	return &h
}

func (c *CompositionRoot) createConfirmGracePeriodCommandHandler() *commands.ConfirmGracePeriodCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewConfirmGracePeriodCommandHandler(f, c.clock)
	return &h
}

func (c *CompositionRoot) createPurgeIdempotencyRecordsCommandHandler() *commands.PurgeIdempotencyRecordsCommandHandler {
	var f commands.IdempotencyUoWFactory = FuncIdempotencyUoWFactory(func() commands.IdempotencyUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewPurgeIdempotencyRecordsCommandHandler(f, c.clock)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersForUserQueryHandler() queries.GetOrdersForUserQueryHandler {
	return queries.NewGetOrdersForUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCardTypesQueryHandler() queries.GetCardTypesQueryHandler {
	return queries.NewGetCardTypesQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncIdempotencyUoWFactory func() commands.IdempotencyUoW

func (f FuncIdempotencyUoWFactory) Create() commands.IdempotencyUoW {
	return f()
}
