package aggregation

import (
	"context"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/componentry"
	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
)

// pair is the bar-building state of one specification. builder is nil while the pair is idle.
type pair struct {
	builder *BarBuilder
	spread  *SpreadAnalyzer
}

// Aggregator builds the bars of every subscribed specification of one symbol.
// All state is owned by the goroutine running Run; other goroutines talk to it through Send.
type Aggregator struct {
	symbol  barv1.Symbol
	parent  aggregationv1.Receiver
	mailbox *componentry.Mailbox[aggregationv1.Message]
	cctx    componentry.Context
	logger  logger.Interface

	pairs        map[barv1.BarSpecification]*pair
	specs        []barv1.BarSpecification
	isMarketOpen bool
}

// NewAggregator creates the aggregator of symbol. Closed bars are sent to parent.
// isMarketOpen is the session state at creation; later changes arrive as messages.
func NewAggregator(
	cctx componentry.Context,
	symbol barv1.Symbol,
	parent aggregationv1.Receiver,
	isMarketOpen bool,
	mailboxCapacity int,
) *Aggregator {
	return &Aggregator{
		symbol:       symbol,
		parent:       parent,
		mailbox:      componentry.NewMailbox[aggregationv1.Message](mailboxCapacity),
		cctx:         cctx,
		logger:       cctx.Logger.WithFields(logger.NewField("symbol", symbol.String())),
		pairs:        make(map[barv1.BarSpecification]*pair),
		isMarketOpen: isMarketOpen,
	}
}

// Symbol returns the symbol this aggregator builds bars for.
func (a *Aggregator) Symbol() barv1.Symbol {
	return a.symbol
}

// Send queues msg. It returns false once the aggregator has stopped.
func (a *Aggregator) Send(msg aggregationv1.Message) bool {
	return a.mailbox.Post(msg)
}

// Run processes messages until ctx is cancelled. Messages queued at cancellation are still
// handled, so bars they close reach the parent.
func (a *Aggregator) Run(ctx context.Context) {
	a.logger.Debug("Aggregator started", logger.NewField("market_open", a.isMarketOpen))

	for {
		select {
		case <-ctx.Done():
			a.mailbox.Close()
			pending := a.mailbox.Drain()
			for _, msg := range pending {
				a.handle(msg)
			}
			a.logger.Debug("Aggregator shutting down", logger.NewField("drained", len(pending)))
			return
		case <-a.mailbox.Ready():
			for _, msg := range a.mailbox.Drain() {
				a.handle(msg)
			}
		}
	}
}

func (a *Aggregator) handle(msg aggregationv1.Message) {
	switch m := msg.(type) {
	case aggregationv1.Subscribe:
		a.subscribe(m.BarType.Specification)
	case aggregationv1.Unsubscribe:
		a.unsubscribe(m.BarType.Specification)
	case aggregationv1.NewTick:
		a.onTick(m.Tick)
	case aggregationv1.CloseBar:
		a.closeBar(m.Specification, m.CloseTime)
	case aggregationv1.MarketOpened:
		a.isMarketOpen = true
		a.logger.Debug("Market opened", logger.NewField("timestamp", m.Timestamp))
	case aggregationv1.MarketClosed:
		a.isMarketOpen = false
		a.logger.Debug("Market closed", logger.NewField("timestamp", m.Timestamp))
	default:
		a.logger.Warn("Unhandled message", logger.NewField("type", messageName(msg)))
	}
}

func (a *Aggregator) subscribe(spec barv1.BarSpecification) {
	if _, ok := a.pairs[spec]; ok {
		a.logger.Debug("Already subscribed", logger.NewField("specification", spec.String()))
		return
	}

	a.pairs[spec] = &pair{spread: NewSpreadAnalyzer()}
	a.specs = append(a.specs, spec)

	a.logger.Info("Subscribed", logger.NewField("specification", spec.String()))
}

func (a *Aggregator) unsubscribe(spec barv1.BarSpecification) {
	if _, ok := a.pairs[spec]; !ok {
		a.logger.Warn("Unsubscribe for inactive specification", logger.NewField("specification", spec.String()))
		return
	}

	delete(a.pairs, spec)
	for i, s := range a.specs {
		if s == spec {
			a.specs = append(a.specs[:i], a.specs[i+1:]...)
			break
		}
	}

	a.logger.Info("Unsubscribed", logger.NewField("specification", spec.String()))
}

func (a *Aggregator) onTick(tick barv1.Tick) {
	if !a.isMarketOpen {
		a.logger.Debug("Tick outside market session", logger.NewField("timestamp", tick.Timestamp))
	}

	for _, spec := range a.specs {
		p := a.pairs[spec]
		price := tick.Price(spec.QuoteType())

		if p.builder == nil {
			p.builder = NewBarBuilder(price, tick.Timestamp)
		} else {
			p.builder.Update(price, tick.Timestamp)
		}
		p.spread.Update(tick)

		if spec.IsTickBar() && p.builder.Count() >= int64(spec.Period()) {
			a.emit(spec, p, tick.Timestamp)
		}
	}
}

func (a *Aggregator) closeBar(spec barv1.BarSpecification, closeTime time.Time) {
	p, ok := a.pairs[spec]
	if !ok {
		a.logger.Debug("Close for inactive specification", logger.NewField("specification", spec.String()))
		return
	}
	if p.builder == nil {
		return
	}

	a.emit(spec, p, closeTime)
}

// emit sends the bar of p and leaves the pair idle until its next tick.
func (a *Aggregator) emit(spec barv1.BarSpecification, p *pair, closeTime time.Time) {
	closed := aggregationv1.BarClosed{
		BarType:       barv1.BarType{Symbol: a.symbol, Specification: spec},
		Bar:           p.builder.Build(closeTime),
		AverageSpread: p.spread.AverageSpread(),
	}

	p.builder = nil
	p.spread.Reset(closeTime)

	if !a.parent.Send(closed) {
		a.logger.Warn("Closed bar dropped, receiver stopped", logger.NewField("bar_type", closed.BarType.String()))
		return
	}

	a.logger.Debug("Bar closed",
		logger.NewField("specification", spec.String()),
		logger.NewField("bar", closed.Bar.String()),
	)
}

// IsMarketOpen reports the session state last seen by the aggregator.
// Only safe to call from the goroutine running the aggregator.
func (a *Aggregator) IsMarketOpen() bool {
	return a.isMarketOpen
}

// Specifications returns the active specifications in subscription order.
// Only safe to call from the goroutine running the aggregator.
func (a *Aggregator) Specifications() []barv1.BarSpecification {
	out := make([]barv1.BarSpecification, len(a.specs))
	copy(out, a.specs)
	return out
}
