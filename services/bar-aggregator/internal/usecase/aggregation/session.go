package aggregation

import (
	"time"

	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	schedulerv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/scheduler/v1"
)

const (
	// DefaultMarketOpen is Sunday 21:00 UTC, the start of the weekly FX session.
	DefaultMarketOpen = "0 21 * * SUN"
	// DefaultMarketClose is Saturday 20:00 UTC.
	DefaultMarketClose = "0 20 * * SAT"
)

// Market session job keys.
var (
	MarketOpenedJobKey = schedulerv1.JobKey{Group: JobGroup, Name: "market_opened"}
	MarketClosedJobKey = schedulerv1.JobKey{Group: JobGroup, Name: "market_closed"}
)

// MarketSession is the weekly open/close window.
type MarketSession struct {
	open  schedulerv1.CronTrigger
	close schedulerv1.CronTrigger
}

// NewMarketSession parses the open and close cron expressions.
func NewMarketSession(openExpr, closeExpr string) (*MarketSession, error) {
	open, err := schedulerv1.NewCronTrigger(openExpr)
	if err != nil {
		return nil, err
	}
	closeTrigger, err := schedulerv1.NewCronTrigger(closeExpr)
	if err != nil {
		return nil, err
	}

	return &MarketSession{open: open, close: closeTrigger}, nil
}

// DefaultMarketSession returns the Sunday 21:00 to Saturday 20:00 UTC session.
func DefaultMarketSession() *MarketSession {
	s, err := NewMarketSession(DefaultMarketOpen, DefaultMarketClose)
	if err != nil {
		panic(err)
	}
	return s
}

// IsMarketOpen reports whether now falls inside the session. The market is open when the next
// close comes before the next open.
func (s *MarketSession) IsMarketOpen(now time.Time) bool {
	return s.close.Next(now).Before(s.open.Next(now))
}

// NextOpen returns the first session open strictly after now.
func (s *MarketSession) NextOpen(now time.Time) time.Time {
	return s.open.Next(now)
}

// NextClose returns the first session close strictly after now.
func (s *MarketSession) NextClose(now time.Time) time.Time {
	return s.close.Next(now)
}

// Jobs returns the two weekly jobs delivering MarketStatusJob to receiver.
func (s *MarketSession) Jobs(receiver aggregationv1.Receiver) []schedulerv1.CreateJob {
	return []schedulerv1.CreateJob{
		{
			Key:      MarketOpenedJobKey,
			Trigger:  s.open,
			Misfire:  schedulerv1.MisfireFireNow,
			Payload:  aggregationv1.MarketStatusJob{IsOpen: true},
			Receiver: receiver,
		},
		{
			Key:      MarketClosedJobKey,
			Trigger:  s.close,
			Misfire:  schedulerv1.MisfireFireNow,
			Payload:  aggregationv1.MarketStatusJob{IsOpen: false},
			Receiver: receiver,
		},
	}
}
