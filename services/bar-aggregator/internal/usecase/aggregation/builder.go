package aggregation

import (
	"time"

	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
	"github.com/shopspring/decimal"
)

// BarBuilder accumulates one window. The opening price counts as the first tick.
type BarBuilder struct {
	open  decimal.Decimal
	high  decimal.Decimal
	low   decimal.Decimal
	close decimal.Decimal
	count int64
	start time.Time
	last  time.Time
}

// NewBarBuilder starts a window at start with open=high=low=close=open.
func NewBarBuilder(open decimal.Decimal, start time.Time) *BarBuilder {
	return &BarBuilder{
		open:  open,
		high:  open,
		low:   open,
		close: open,
		count: 1,
		start: start,
		last:  start,
	}
}

// Update applies a price. Timestamps are not checked for order.
func (b *BarBuilder) Update(price decimal.Decimal, timestamp time.Time) {
	if price.GreaterThan(b.high) {
		b.high = price
	}
	if price.LessThan(b.low) {
		b.low = price
	}
	b.close = price
	b.count++
	b.last = timestamp
}

// Build returns the bar closed at closeTimestamp. The builder is not modified.
func (b *BarBuilder) Build(closeTimestamp time.Time) barv1.Bar {
	return barv1.Bar{
		Open:      b.open,
		High:      b.high,
		Low:       b.low,
		Close:     b.close,
		Volume:    b.count,
		Timestamp: closeTimestamp,
	}
}

// Count returns the number of ticks in the window.
func (b *BarBuilder) Count() int64 {
	return b.count
}

// Start returns when the window opened.
func (b *BarBuilder) Start() time.Time {
	return b.start
}

// LastUpdate returns the timestamp of the latest tick.
func (b *BarBuilder) LastUpdate() time.Time {
	return b.last
}
