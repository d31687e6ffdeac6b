package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/util"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/componentry"
	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	barpublisherv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar-publisher/v1"
	questdbbar "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/infrastructure/questdb/bar"
	redisbar "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/infrastructure/redis/bar"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/metrics"
)

// Sink names used in logs and the failures metric.
const (
	SinkQuestDB = "questdb"
	SinkRedis   = "redis"
	SinkKafka   = "kafka"
)

// Sinks are the destinations of closed bars. A nil sink is skipped.
type Sinks struct {
	Repository questdbbar.BarRepository
	Cache      redisbar.LatestBarStore
	Publisher  barpublisherv1.BarPublisher
}

// Manager receives closed bars from the controller and hands each one to every sink.
// A failing sink is logged and counted; the bar is not retried.
type Manager struct {
	logger  logger.Interface
	mailbox *componentry.Mailbox[aggregationv1.Message]
	sinks   Sinks
	metrics *metrics.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager creates a new ingest manager.
func NewManager(cctx componentry.Context, sinks Sinks, m *metrics.Metrics, mailboxCapacity int) *Manager {
	return &Manager{
		logger:  cctx.Logger.WithFields(logger.NewField("component", "ingest")),
		mailbox: componentry.NewMailbox[aggregationv1.Message](mailboxCapacity),
		sinks:   sinks,
		metrics: m,
	}
}

// Send queues msg. It returns false once the manager has stopped.
func (m *Manager) Send(msg aggregationv1.Message) bool {
	return m.mailbox.Post(msg)
}

// Start starts the delivery loop.
func (m *Manager) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go m.run()

	m.logger.Info("Ingest manager started",
		logger.NewField("questdb", m.sinks.Repository != nil),
		logger.NewField("redis", m.sinks.Cache != nil),
		logger.NewField("kafka", m.sinks.Publisher != nil),
	)
	return nil
}

// Stop delivers whatever is already queued and waits for the loop to return.
func (m *Manager) Stop(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Ingest manager stopped")
		return nil
	case <-ctx.Done():
		m.logger.Warn("Ingest manager stop timeout exceeded", logger.NewField("pending", m.mailbox.Len()))
		return ctx.Err()
	}
}

func (m *Manager) run() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			m.mailbox.Close()
			// Sinks get a fresh context so bars closed before shutdown still land.
			flush := context.WithoutCancel(m.ctx)
			for _, msg := range m.mailbox.Drain() {
				m.handle(flush, msg)
			}
			return
		case <-m.mailbox.Ready():
			for _, msg := range m.mailbox.Drain() {
				m.handle(m.ctx, msg)
			}
		}
	}
}

func (m *Manager) handle(ctx context.Context, msg aggregationv1.Message) {
	delivery, ok := msg.(aggregationv1.DataDelivery)
	if !ok {
		m.logger.Warn("Unhandled message", logger.NewField("type", fmt.Sprintf("%T", msg)))
		return
	}
	m.ingest(ctx, delivery)
}

func (m *Manager) ingest(ctx context.Context, delivery aggregationv1.DataDelivery) {
	ctx = util.WithEventID(ctx, delivery.ID)
	barType := delivery.Data.BarType.String()

	m.logger.DebugContext(ctx, "Ingesting bar",
		logger.NewField("bar_type", barType),
		logger.NewField("bar", delivery.Data.Bar.String()),
	)

	if m.sinks.Repository != nil {
		if err := m.sinks.Repository.Store(ctx, questdbbar.FromDelivery(delivery)); err != nil {
			m.fail(ctx, SinkQuestDB, barType, err)
		}
	}

	event := barpublisherv1.NewBarEvent(delivery)

	if m.sinks.Cache != nil {
		if err := m.sinks.Cache.Save(ctx, event); err != nil {
			m.fail(ctx, SinkRedis, barType, err)
		}
	}

	if m.sinks.Publisher != nil {
		if err := m.sinks.Publisher.PublishBar(ctx, event); err != nil {
			m.fail(ctx, SinkKafka, barType, err)
		}
	}
}

func (m *Manager) fail(ctx context.Context, sink, barType string, err error) {
	m.metrics.IngestFailures.WithLabelValues(sink).Inc()
	m.logger.ErrorContext(ctx, err,
		logger.Field{Key: "action", Value: "ingest_bar"},
		logger.Field{Key: "sink", Value: sink},
		logger.Field{Key: "bar_type", Value: barType},
	)
}
