package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpadapter "notapos/internal/adapters/in/http"
	"notapos/internal/adapters/out/postgres"
	"notapos/internal/adapters/out/rabbitmq"
	"notapos/internal/core/application/usecases/commands"
	"notapos/internal/core/application/usecases/queries"
	"notapos/internal/core/ports"
	"notapos/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. It is the only place
// that knows concrete adapter types; everything below it depends on ports.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      ports.Clock
	notifier   ports.PrepStationNotifier
	amqpConn   rabbitmq.Connection
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph. When the config carries an AMQP
// URL the broker connection is established here; without one, dispatch
// notifications are discarded.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      ports.SystemClock{},
		notifier:   ports.NopPrepStationNotifier{},
		logger:     logger,
	}

	if config.AmqpURL != "" {
		conn, err := rabbitmq.Connect(config.AmqpURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to message broker: %w", err)
		}
		root.amqpConn = conn
		root.notifier = rabbitmq.NewPrepStationNotifier(conn)
	}

	return root, nil
}

// Close releases the resources owned by the root, currently only the broker
// connection.
func (c *CompositionRoot) Close() error {
	if c.amqpConn != nil && !c.amqpConn.IsClosed() {
		return c.amqpConn.Close()
	}
	return nil
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateEditOrderItemCommandHandler() commands.EditOrderItemCommandHandler {
	return commands.NewEditOrderItemCommandHandler(c.createUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSendOrderItemsCommandHandler() commands.SendOrderItemsCommandHandler {
	return commands.NewSendOrderItemsCommandHandler(c.createUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSendItemNowCommandHandler() commands.SendItemNowCommandHandler {
	return commands.NewSendItemNowCommandHandler(c.createUoWFactory(), c.clock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	return commands.NewRemoveOrderItemCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateStartPreparationCommandHandler() commands.StartPreparationCommandHandler {
	return commands.NewStartPreparationCommandHandler(c.createUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompleteOrderItemCommandHandler() commands.CompleteOrderItemCommandHandler {
	return commands.NewCompleteOrderItemCommandHandler(c.createUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDispatchExpiredItemsCommandHandler() commands.DispatchExpiredItemsCommandHandler {
	return commands.NewDispatchExpiredItemsCommandHandler(
		c.createUoWFactory(), c.clock, c.notifier, c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderItemsQueryHandler() queries.GetOrderItemsQueryHandler {
	return queries.NewGetOrderItemsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPrepQueueQueryHandler() queries.GetPrepQueueQueryHandler {
	return queries.NewGetPrepQueueQueryHandler(c.gormDB)
}

// CreateJobManager builds the background job manager with the expiry sweep.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchExpiredItemsCommandHandler(),
		time.Duration(c.config.SweepIntervalSeconds)*time.Second,
		time.Duration(c.config.SweepGraceSeconds)*time.Second,
		c.logger,
	)
}

// CreateHTTPServer builds the REST API server with all handlers wired.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateAddOrderItemCommandHandler(),
		c.CreateEditOrderItemCommandHandler(),
		c.CreateSendOrderItemsCommandHandler(),
		c.CreateSendItemNowCommandHandler(),
		c.CreateRemoveOrderItemCommandHandler(),
		c.CreateStartPreparationCommandHandler(),
		c.CreateCompleteOrderItemCommandHandler(),
		c.CreateGetOrderItemsQueryHandler(),
		c.CreateGetPrepQueueQueryHandler(),
		c.config.DefaultDelaySeconds,
	)
}

// FuncUoWFactory adapts a closure to the commands.UoWFactory interface.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
