package aggregationv1

import (
	"time"

	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/interval"
	"github.com/shopspring/decimal"
)

// Message is anything an aggregation actor accepts in its mailbox.
// The set is closed: only the types in this file implement it.
type Message interface {
	message()
}

// Receiver accepts messages. Send never blocks and returns false when the receiver has stopped.
type Receiver interface {
	Send(msg Message) bool
}

// Subscribe registers interest in a bar type.
type Subscribe struct {
	BarType   barv1.BarType
	Requester string
}

// Unsubscribe removes interest in a bar type.
type Unsubscribe struct {
	BarType barv1.BarType
}

// NewTick carries a tick from the feed.
type NewTick struct {
	Tick barv1.Tick
}

// BarJob is the payload of a duration's bar-close job. The scheduler delivers it on every fire.
type BarJob struct {
	Duration interval.Duration
}

// MarketStatusJob is the payload of the weekly market open and close jobs.
type MarketStatusJob struct {
	IsOpen bool
}

// CloseBar tells an aggregator to close the open window of a specification.
type CloseBar struct {
	Specification barv1.BarSpecification
	CloseTime     time.Time
}

// MarketOpened tells an aggregator the market session started.
type MarketOpened struct {
	Timestamp time.Time
}

// MarketClosed tells an aggregator the market session ended.
type MarketClosed struct {
	Timestamp time.Time
}

// BarClosed is emitted by an aggregator when a window closes.
type BarClosed struct {
	BarType       barv1.BarType
	Bar           barv1.Bar
	AverageSpread decimal.Decimal
}

// DataDelivery wraps a closed bar on its way downstream.
type DataDelivery struct {
	ID        string
	Timestamp time.Time
	Data      BarClosed
}

func (Subscribe) message()       {}
func (Unsubscribe) message()     {}
func (NewTick) message()         {}
func (BarJob) message()          {}
func (MarketStatusJob) message() {}
func (CloseBar) message()        {}
func (MarketOpened) message()    {}
func (MarketClosed) message()    {}
func (BarClosed) message()       {}
func (DataDelivery) message()    {}
