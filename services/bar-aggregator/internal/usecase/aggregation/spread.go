package aggregation

import (
	"time"

	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
	"github.com/shopspring/decimal"
)

// SpreadAnalyzer averages the bid/ask spread over the ticks of one window.
type SpreadAnalyzer struct {
	sum       decimal.Decimal
	count     int64
	lastReset time.Time
}

// NewSpreadAnalyzer returns an empty analyzer.
func NewSpreadAnalyzer() *SpreadAnalyzer {
	return &SpreadAnalyzer{}
}

// Update adds the spread of tick.
func (s *SpreadAnalyzer) Update(tick barv1.Tick) {
	s.sum = s.sum.Add(tick.Spread())
	s.count++
}

// AverageSpread returns the mean spread, or zero before any update.
func (s *SpreadAnalyzer) AverageSpread() decimal.Decimal {
	if s.count == 0 {
		return decimal.Zero
	}
	return s.sum.Div(decimal.NewFromInt(s.count))
}

// Count returns the number of ticks averaged.
func (s *SpreadAnalyzer) Count() int64 {
	return s.count
}

// Reset clears the running sum. timestamp is kept for diagnostics only.
func (s *SpreadAnalyzer) Reset(timestamp time.Time) {
	s.sum = decimal.Zero
	s.count = 0
	s.lastReset = timestamp
}

// LastReset returns the timestamp of the last Reset.
func (s *SpreadAnalyzer) LastReset() time.Time {
	return s.lastReset
}
