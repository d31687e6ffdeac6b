package bootstrap

import (
	"github.com/muhammadchandra19/exchange/pkg/logger"
	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	barpublisher "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/usecase/bar-publisher"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/usecase/aggregation"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/usecase/ingest"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/usecase/scheduler"
)

// ConfigRequester is the requester recorded for subscriptions read from the environment.
const ConfigRequester = "config"

// Usecase holds the actors of the service.
type Usecase struct {
	Scheduler    *scheduler.Scheduler
	BarPublisher *barpublisher.Publisher
	Ingest       *ingest.Manager
	Controller   *aggregation.Controller
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() error {
	aggCfg := b.Config.Aggregation

	session, err := aggregation.NewMarketSession(aggCfg.MarketOpen, aggCfg.MarketClose)
	if err != nil {
		return err
	}

	b.Usecase.Scheduler = scheduler.NewSchedulerWithOptions(
		b.Context.WithLogger(b.Logger.WithFields(logger.NewField("component", "scheduler"))),
		b.Metrics,
		&scheduler.Options{MisfireThreshold: aggCfg.MisfireThreshold},
	)

	sinks := ingest.Sinks{
		Repository: b.Repository.BarRepository,
		Cache:      b.Repository.LatestBarStore,
	}
	if b.Config.Ingest.PublishBars {
		b.Usecase.BarPublisher = barpublisher.NewPublisher(b.Config.BarKafka, b.Logger)
		sinks.Publisher = b.Usecase.BarPublisher
	}
	b.Usecase.Ingest = ingest.NewManager(b.Context, sinks, b.Metrics, aggCfg.MailboxCapacity)

	b.Usecase.Controller = aggregation.NewControllerWithOptions(
		b.Context.WithLogger(b.Logger.WithFields(logger.NewField("component", "controller"))),
		b.Usecase.Scheduler,
		b.Usecase.Ingest,
		session,
		b.Metrics,
		&aggregation.Options{MailboxCapacity: aggCfg.MailboxCapacity},
	)

	return nil
}

// subscribeConfigured sends the startup subscriptions to the controller.
func (b *Bootstrap) subscribeConfigured() error {
	barTypes, err := b.Config.Aggregation.BarTypes()
	if err != nil {
		return err
	}

	for _, barType := range barTypes {
		b.Usecase.Controller.Send(aggregationv1.Subscribe{BarType: barType, Requester: ConfigRequester})
	}

	b.Logger.Info("Configured subscriptions sent", logger.NewField("count", len(barTypes)))
	return nil
}
