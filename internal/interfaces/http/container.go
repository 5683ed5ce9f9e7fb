package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/supportdesk/internal/domain/shared/events"
	"github.com/orris-inc/supportdesk/internal/infrastructure/config"
	"github.com/orris-inc/supportdesk/internal/infrastructure/email"
	"github.com/orris-inc/supportdesk/internal/infrastructure/pubsub"
	"github.com/orris-inc/supportdesk/internal/infrastructure/repository"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

const eventQueueSize = 256

// Container holds the infrastructure components, use cases and handlers, wires
// them together and provides Shutdown for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Per-request stores
	stores *repository.StoreFactory

	// Ticket events; nil when no sink is configured.
	dispatcher *events.InMemoryEventDispatcher
	publisher  events.EventPublisher

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine:    gin.New(),
		db:        db,
		cfg:       cfg,
		log:       log,
		publisher: events.NopPublisher{},
	}

	// Section 1: Infrastructure - Stores, Redis, Event Sinks
	c.initInfrastructure()

	// Section 2: Ticket use cases
	c.initUseCases()

	// Section 3: Handlers
	c.initHandlers()

	return c
}

func (c *Container) initInfrastructure() {
	c.stores = repository.NewStoreFactory(c.db)

	var sinks []events.EventHandler

	if c.cfg.Redis.Enabled {
		client, err := pubsub.NewRedisClient(context.Background(), &c.cfg.Redis)
		if err != nil {
			c.log.Warnw("redis unavailable, ticket events will not be published",
				"addr", c.cfg.Redis.GetAddr(),
				"error", err,
			)
		} else {
			c.redis = client
			sinks = append(sinks, pubsub.NewRedisTicketEventHandler(client, c.cfg.Redis.Channel, c.log.Named("redis-events")))
			c.log.Infow("redis ticket event publisher enabled", "channel", c.cfg.Redis.Channel)
		}
	}

	if c.cfg.Email.Enabled {
		sinks = append(sinks, email.NewTicketNotifier(&c.cfg.Email, c.log.Named("email")))
		c.log.Infow("email ticket notifications enabled", "notify_address", c.cfg.Email.NotifyAddress)
	}

	if len(sinks) == 0 {
		return
	}

	c.dispatcher = events.NewInMemoryEventDispatcher(eventQueueSize, c.log.Named("events"))
	for _, sink := range sinks {
		c.dispatcher.Subscribe(sink)
	}
	c.dispatcher.Start()
	c.publisher = c.dispatcher
}

// Shutdown drains queued ticket events and releases the Redis connection.
// The database handle belongs to the caller.
func (c *Container) Shutdown() {
	if c.dispatcher != nil {
		c.dispatcher.Stop()
		c.log.Infow("event dispatcher stopped")
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
