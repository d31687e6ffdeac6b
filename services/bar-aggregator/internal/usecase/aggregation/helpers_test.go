package aggregation

import (
	"fmt"
	"sync"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/componentry"
	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
	"github.com/shopspring/decimal"
)

var (
	audusd = barv1.NewSymbol("AUDUSD", "FXCM")
	eurusd = barv1.NewSymbol("EURUSD", "FXCM")

	oneSecondBid = barv1.MustBarSpecification(1, barv1.ResolutionSecond, barv1.Bid)
	oneMinuteBid = barv1.MustBarSpecification(1, barv1.ResolutionMinute, barv1.Bid)
	oneMinuteAsk = barv1.MustBarSpecification(1, barv1.ResolutionMinute, barv1.Ask)

	// 2024-03-14 is a Thursday, inside the default session.
	thursday = time.Date(2024, time.March, 14, 10, 15, 30, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bidTick(symbol barv1.Symbol, bid string, ts time.Time) barv1.Tick {
	b := dec(bid)
	return barv1.Tick{
		Symbol:    symbol,
		Bid:       b,
		Ask:       b.Add(dec("0.0002")),
		Timestamp: ts,
	}
}

// newTestContext returns a context on a stub clock with sequential ids.
func newTestContext(now time.Time) (componentry.Context, *componentry.StubClock) {
	clock := componentry.NewStubClock(now)

	var (
		mu  sync.Mutex
		seq int
	)
	return componentry.Context{
		Clock: clock,
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
		Logger: logger.NewNop(),
	}, clock
}

// recorder is a Receiver that keeps everything it is sent.
type recorder struct {
	mu      sync.Mutex
	msgs    []aggregationv1.Message
	stopped bool
}

func (r *recorder) Send(msg aggregationv1.Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return false
	}
	r.msgs = append(r.msgs, msg)
	return true
}

func (r *recorder) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
}

// bars returns the closed bars received, unwrapping deliveries.
func (r *recorder) bars() []aggregationv1.BarClosed {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []aggregationv1.BarClosed
	for _, msg := range r.msgs {
		switch m := msg.(type) {
		case aggregationv1.BarClosed:
			out = append(out, m)
		case aggregationv1.DataDelivery:
			out = append(out, m.Data)
		}
	}
	return out
}

func (r *recorder) deliveries() []aggregationv1.DataDelivery {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []aggregationv1.DataDelivery
	for _, msg := range r.msgs {
		if d, ok := msg.(aggregationv1.DataDelivery); ok {
			out = append(out, d)
		}
	}
	return out
}

func (r *recorder) barsFor(barType barv1.BarType) []barv1.Bar {
	var out []barv1.Bar
	for _, b := range r.bars() {
		if b.BarType == barType {
			out = append(out, b.Bar)
		}
	}
	return out
}
