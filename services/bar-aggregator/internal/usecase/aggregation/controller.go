package aggregation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/componentry"
	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
	schedulerv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/scheduler/v1"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/metrics"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/interval"
)

// fireTolerance is how far the wall clock may lag the scheduler timer of a bar job.
const fireTolerance = 5 * time.Millisecond

// Options tunes the controller.
type Options struct {
	// MailboxCapacity is the initial queue size of the controller and of every aggregator.
	MailboxCapacity int
}

// DefaultControllerOptions returns the options used when none are given.
func DefaultControllerOptions() *Options {
	return &Options{
		MailboxCapacity: 1024,
	}
}

// Controller is the single entry point of bar aggregation. It routes subscriptions and ticks
// to per-symbol aggregators, keeps one scheduled job per bar duration and forwards closed bars
// downstream. Every field below is owned by the controller goroutine.
type Controller struct {
	cctx       componentry.Context
	logger     logger.Interface
	mailbox    *componentry.Mailbox[aggregationv1.Message]
	scheduler  schedulerv1.Scheduler
	downstream aggregationv1.Receiver
	session    *MarketSession
	metrics    *metrics.Metrics
	options    *Options

	coordinator   *TriggerCoordinator
	aggregators   map[barv1.Symbol]*Aggregator
	subscriptions map[barv1.BarType]string
	isMarketOpen  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	aggWg  sync.WaitGroup
}

// NewController creates a controller with the default options.
func NewController(
	cctx componentry.Context,
	scheduler schedulerv1.Scheduler,
	downstream aggregationv1.Receiver,
	session *MarketSession,
	m *metrics.Metrics,
) *Controller {
	return NewControllerWithOptions(cctx, scheduler, downstream, session, m, DefaultControllerOptions())
}

// NewControllerWithOptions creates a controller with custom options.
func NewControllerWithOptions(
	cctx componentry.Context,
	scheduler schedulerv1.Scheduler,
	downstream aggregationv1.Receiver,
	session *MarketSession,
	m *metrics.Metrics,
	options *Options,
) *Controller {
	return &Controller{
		cctx:          cctx,
		logger:        cctx.Logger,
		mailbox:       componentry.NewMailbox[aggregationv1.Message](options.MailboxCapacity),
		scheduler:     scheduler,
		downstream:    downstream,
		session:       session,
		metrics:       m,
		options:       options,
		coordinator:   NewTriggerCoordinator(cctx),
		aggregators:   make(map[barv1.Symbol]*Aggregator),
		subscriptions: make(map[barv1.BarType]string),
	}
}

// Send queues msg. It returns false once the controller has stopped.
func (c *Controller) Send(msg aggregationv1.Message) bool {
	return c.mailbox.Post(msg)
}

// Start creates the market session jobs and starts the message loop.
func (c *Controller) Start(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)

	c.setMarketOpen(c.session.IsMarketOpen(c.cctx.Now()))
	for _, job := range c.session.Jobs(c) {
		job.ID = c.cctx.NewID()
		job.Timestamp = c.cctx.Now()
		if err := c.scheduler.CreateJob(c.ctx, job); err != nil {
			c.logger.ErrorContext(c.ctx, err, logger.NewField("job", job.Key.String()))
		}
	}

	c.wg.Add(1)
	go c.run()

	c.logger.Info("Bar aggregation controller started", logger.NewField("market_open", c.isMarketOpen))
	return nil
}

// Stop cancels the message loop and every aggregator and waits for them to return.
// Bars closed before the aggregators return are still forwarded downstream.
func (c *Controller) Stop(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Bar aggregation controller stopped")
		return nil
	case <-ctx.Done():
		c.logger.Warn("Controller stop timeout exceeded")
		return ctx.Err()
	}
}

func (c *Controller) run() {
	defer c.wg.Done()

	for {
		select {
		case <-c.ctx.Done():
			c.shutdown()
			return
		case <-c.mailbox.Ready():
			for _, msg := range c.mailbox.Drain() {
				c.handle(msg)
			}
		}
	}
}

// shutdown waits for the aggregators to drain, then forwards the bars they closed.
// Everything else still queued is dropped.
func (c *Controller) shutdown() {
	c.aggWg.Wait()
	c.mailbox.Close()

	forwarded, dropped := 0, 0
	for _, msg := range c.mailbox.Drain() {
		if closed, ok := msg.(aggregationv1.BarClosed); ok {
			c.onBarClosed(closed)
			forwarded++
			continue
		}
		dropped++
	}

	c.logger.Info("Controller shutting down",
		logger.NewField("forwarded", forwarded),
		logger.NewField("dropped", dropped),
	)
}

func (c *Controller) handle(msg aggregationv1.Message) {
	switch m := msg.(type) {
	case aggregationv1.Subscribe:
		c.onSubscribe(m)
	case aggregationv1.Unsubscribe:
		c.onUnsubscribe(m)
	case aggregationv1.NewTick:
		c.onTick(m)
	case aggregationv1.BarJob:
		c.onBarJob(m)
	case aggregationv1.MarketStatusJob:
		c.onMarketStatus(m)
	case aggregationv1.BarClosed:
		c.onBarClosed(m)
	default:
		c.logger.Warn("Unhandled message", logger.NewField("type", messageName(msg)))
	}
}

func (c *Controller) onSubscribe(msg aggregationv1.Subscribe) {
	barType := msg.BarType

	agg := c.aggregator(barType.Symbol)
	agg.Send(msg)

	if _, ok := c.subscriptions[barType]; !ok {
		c.subscriptions[barType] = msg.Requester
		c.metrics.Subscriptions.Set(float64(len(c.subscriptions)))
	}

	d, ok := barType.Specification.Duration()
	if !ok {
		c.logger.Info("Subscribed to tick bars",
			logger.NewField("bar_type", barType.String()),
			logger.NewField("requester", msg.Requester),
		)
		return
	}

	if c.coordinator.Acquire(barType) {
		c.createBarJob(d)
	}

	c.logger.Info("Subscribed",
		logger.NewField("bar_type", barType.String()),
		logger.NewField("requester", msg.Requester),
		logger.NewField("duration", d.String()),
		logger.NewField("subscribers", c.coordinator.RefCount(d)),
	)
}

func (c *Controller) onUnsubscribe(msg aggregationv1.Unsubscribe) {
	barType := msg.BarType

	agg, ok := c.aggregators[barType.Symbol]
	if !ok {
		c.logger.Warn("Unsubscribe for unknown symbol", logger.NewField("bar_type", barType.String()))
		return
	}
	agg.Send(msg)

	if _, ok := c.subscriptions[barType]; ok {
		delete(c.subscriptions, barType)
		c.metrics.Subscriptions.Set(float64(len(c.subscriptions)))
	}

	d, ok := barType.Specification.Duration()
	if !ok {
		c.logger.Info("Unsubscribed from tick bars", logger.NewField("bar_type", barType.String()))
		return
	}

	if c.coordinator.Release(barType) {
		c.removeBarJob(d)
	}

	c.logger.Info("Unsubscribed",
		logger.NewField("bar_type", barType.String()),
		logger.NewField("duration", d.String()),
		logger.NewField("subscribers", c.coordinator.RefCount(d)),
	)
}

func (c *Controller) onTick(msg aggregationv1.NewTick) {
	symbol := msg.Tick.Symbol.String()

	agg, ok := c.aggregators[msg.Tick.Symbol]
	if !ok {
		c.metrics.TicksDropped.WithLabelValues(symbol).Inc()
		c.logger.Warn("Tick for unknown symbol", logger.NewField("symbol", symbol))
		return
	}

	c.metrics.TicksReceived.WithLabelValues(symbol).Inc()
	agg.Send(msg)
}

// onBarJob closes the windows of every bar type sharing the fired duration with one timestamp.
// The wall clock can read slightly behind the timer that fired the job, so the floor is taken
// fireTolerance ahead of now.
func (c *Controller) onBarJob(msg aggregationv1.BarJob) {
	closeTime := msg.Duration.Floor(c.cctx.Now().Add(fireTolerance))

	barTypes := c.coordinator.BarTypes(msg.Duration)
	if len(barTypes) == 0 {
		c.logger.Debug("Bar job fired without subscribers", logger.NewField("duration", msg.Duration.String()))
		return
	}

	for _, barType := range barTypes {
		agg, ok := c.aggregators[barType.Symbol]
		if !ok {
			continue
		}
		agg.Send(aggregationv1.CloseBar{
			Specification: barType.Specification,
			CloseTime:     closeTime,
		})
	}

	c.logger.Debug("Bar job fired",
		logger.NewField("duration", msg.Duration.String()),
		logger.NewField("close_time", closeTime),
		logger.NewField("bar_types", len(barTypes)),
	)
}

func (c *Controller) onMarketStatus(msg aggregationv1.MarketStatusJob) {
	now := c.cctx.Now()
	c.setMarketOpen(msg.IsOpen)

	for _, d := range c.coordinator.Durations() {
		key := BarJobKey(d)

		var err error
		if msg.IsOpen {
			err = c.scheduler.ResumeJob(c.context(), key)
		} else {
			err = c.scheduler.PauseJob(c.context(), key)
		}
		if err != nil {
			c.logger.ErrorContext(c.context(), err, logger.NewField("job", key.String()))
		}
	}

	for _, agg := range c.aggregators {
		if msg.IsOpen {
			agg.Send(aggregationv1.MarketOpened{Timestamp: now})
		} else {
			agg.Send(aggregationv1.MarketClosed{Timestamp: now})
		}
	}

	c.logger.Info("Market status changed",
		logger.NewField("is_open", msg.IsOpen),
		logger.NewField("triggers", len(c.coordinator.Durations())),
	)
}

func (c *Controller) onBarClosed(msg aggregationv1.BarClosed) {
	delivery := aggregationv1.DataDelivery{
		ID:        c.cctx.NewID(),
		Timestamp: c.cctx.Now(),
		Data:      msg,
	}

	if !c.downstream.Send(delivery) {
		c.logger.Warn("Closed bar dropped, downstream stopped", logger.NewField("bar_type", msg.BarType.String()))
		return
	}
	c.metrics.BarsClosed.WithLabelValues(msg.BarType.String()).Inc()
}

// aggregator returns the aggregator of symbol, creating and starting it on first use.
func (c *Controller) aggregator(symbol barv1.Symbol) *Aggregator {
	if agg, ok := c.aggregators[symbol]; ok {
		return agg
	}

	agg := NewAggregator(c.cctx, symbol, c, c.isMarketOpen, c.options.MailboxCapacity)
	c.aggregators[symbol] = agg

	if c.ctx != nil {
		c.aggWg.Add(1)
		go func() {
			defer c.aggWg.Done()
			agg.Run(c.ctx)
		}()
	}

	c.logger.Info("Aggregator created", logger.NewField("symbol", symbol.String()))
	return agg
}

func (c *Controller) createBarJob(d interval.Duration) {
	trigger, _ := c.coordinator.Trigger(d)
	job := schedulerv1.CreateJob{
		Key:       BarJobKey(d),
		Trigger:   trigger,
		Misfire:   schedulerv1.MisfireFireNow,
		Payload:   aggregationv1.BarJob{Duration: d},
		Receiver:  c,
		ID:        c.cctx.NewID(),
		Timestamp: c.cctx.Now(),
	}

	if err := c.scheduler.CreateJob(c.context(), job); err != nil {
		c.logger.ErrorContext(c.context(), err, logger.NewField("job", job.Key.String()))
	}
	if !c.isMarketOpen {
		if err := c.scheduler.PauseJob(c.context(), job.Key); err != nil {
			c.logger.ErrorContext(c.context(), err, logger.NewField("job", job.Key.String()))
		}
	}

	c.metrics.LiveTriggers.Set(float64(len(c.coordinator.Durations())))
	c.logger.Info("Bar job created",
		logger.NewField("job", job.Key.String()),
		logger.NewField("start", trigger.Start),
		logger.NewField("paused", !c.isMarketOpen),
	)
}

func (c *Controller) removeBarJob(d interval.Duration) {
	key := BarJobKey(d)
	if err := c.scheduler.RemoveJob(c.context(), key); err != nil {
		c.logger.ErrorContext(c.context(), err, logger.NewField("job", key.String()))
	}

	c.metrics.LiveTriggers.Set(float64(len(c.coordinator.Durations())))
	c.logger.Info("Bar job removed", logger.NewField("job", key.String()))
}

func (c *Controller) setMarketOpen(open bool) {
	c.isMarketOpen = open
	c.metrics.SetMarketOpen(open)
}

func (c *Controller) context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func messageName(msg aggregationv1.Message) string {
	return fmt.Sprintf("%T", msg)
}
