package bootstrap

import (
	"context"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/componentry"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/metrics"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/config"
)

// Bootstrap wires the bar aggregator.
type Bootstrap struct {
	Config     *config.Config
	Logger     logger.Interface
	Metrics    *metrics.Metrics
	Context    componentry.Context
	Repository Repository
	Usecase    Usecase
	Consumer   Consumer

	// QuestDB and Redis are optional; a nil client disables the sinks built on it.
	QuestDB questdb.QuestDBClient
	Redis   redis.Client
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	Config  *config.Config
	Logger  logger.Interface
	Metrics *metrics.Metrics
	QuestDB questdb.QuestDBClient
	Redis   redis.Client
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(cfg BootstrapConfig) (*Bootstrap, error) {
	b.Config = cfg.Config
	b.Logger = cfg.Logger
	b.Metrics = cfg.Metrics
	b.QuestDB = cfg.QuestDB
	b.Redis = cfg.Redis
	b.Context = componentry.NewContext(cfg.Logger)

	b.registerRepository()
	if err := b.registerUsecase(); err != nil {
		return nil, err
	}
	b.registerConsumer()

	return b, nil
}

// Start starts every actor, producers last.
func (b *Bootstrap) Start(ctx context.Context) error {
	if err := b.Usecase.Ingest.Start(ctx); err != nil {
		return err
	}
	if err := b.Usecase.Controller.Start(ctx); err != nil {
		return err
	}

	if err := b.subscribeConfigured(); err != nil {
		return err
	}

	for _, c := range b.Consumer.all() {
		if err := c.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Stop stops every actor, producers first, so queued bars still reach the sinks.
func (b *Bootstrap) Stop(ctx context.Context) {
	for _, c := range b.Consumer.all() {
		if err := c.Stop(ctx); err != nil {
			b.Logger.Error(err, logger.Field{Key: "action", Value: "stop_consumer"})
		}
	}

	if err := b.Usecase.Scheduler.Stop(ctx); err != nil {
		b.Logger.Error(err, logger.Field{Key: "action", Value: "stop_scheduler"})
	}
	if err := b.Usecase.Controller.Stop(ctx); err != nil {
		b.Logger.Error(err, logger.Field{Key: "action", Value: "stop_controller"})
	}
	if err := b.Usecase.Ingest.Stop(ctx); err != nil {
		b.Logger.Error(err, logger.Field{Key: "action", Value: "stop_ingest"})
	}

	if b.Usecase.BarPublisher != nil {
		if err := b.Usecase.BarPublisher.Close(); err != nil {
			b.Logger.Error(err, logger.Field{Key: "action", Value: "close_bar_publisher"})
		}
	}
}
