package feedv1

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
	"github.com/shopspring/decimal"
)

// TickEvent is the JSON payload of the tick topic.
type TickEvent struct {
	Symbol    string          `json:"symbol"`
	Bid       decimal.Decimal `json:"bid"`
	Ask       decimal.Decimal `json:"ask"`
	Timestamp time.Time       `json:"timestamp"`
}

// ToBytes encodes the event.
func (e *TickEvent) ToBytes() []byte {
	buf, _ := json.Marshal(e)
	return buf
}

// ToTick validates the event and converts it to a Tick.
func (e *TickEvent) ToTick() (barv1.Tick, error) {
	symbol, err := barv1.ParseSymbol(e.Symbol)
	if err != nil {
		return barv1.Tick{}, err
	}
	if e.Timestamp.IsZero() {
		return barv1.Tick{}, errors.Newf(errors.InvalidTickError, "timestamp", "tick for %s has no timestamp", e.Symbol)
	}
	if !e.Bid.IsPositive() || !e.Ask.IsPositive() {
		return barv1.Tick{}, errors.Newf(errors.InvalidTickError, "price", "tick for %s has non-positive prices", e.Symbol)
	}

	return barv1.Tick{
		Symbol:    symbol,
		Bid:       e.Bid,
		Ask:       e.Ask,
		Timestamp: e.Timestamp.UTC(),
	}, nil
}

// DecodeTick decodes a tick topic message into a NewTick.
func DecodeTick(value []byte) (aggregationv1.Message, error) {
	var event TickEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, errors.NewErrorDetails(err.Error(), string(errors.InvalidTickError), "payload")
	}

	tick, err := event.ToTick()
	if err != nil {
		return nil, err
	}
	return aggregationv1.NewTick{Tick: tick}, nil
}

// Subscription command actions.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// SubscriptionCommand is the JSON payload of the subscription topic.
type SubscriptionCommand struct {
	Action    string `json:"action"`
	BarType   string `json:"bar_type"`
	Requester string `json:"requester"`
}

// ToBytes encodes the command.
func (c *SubscriptionCommand) ToBytes() []byte {
	buf, _ := json.Marshal(c)
	return buf
}

// ToMessage converts the command to a Subscribe or Unsubscribe message.
func (c *SubscriptionCommand) ToMessage() (aggregationv1.Message, error) {
	barType, err := barv1.ParseBarType(c.BarType)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(c.Action) {
	case ActionSubscribe:
		return aggregationv1.Subscribe{BarType: barType, Requester: c.Requester}, nil
	case ActionUnsubscribe:
		return aggregationv1.Unsubscribe{BarType: barType}, nil
	default:
		return nil, errors.Newf(errors.GeneralBadRequestError, "action", "unknown subscription action %q", c.Action)
	}
}

// DecodeSubscriptionCommand decodes a subscription topic message.
func DecodeSubscriptionCommand(value []byte) (aggregationv1.Message, error) {
	var cmd SubscriptionCommand
	if err := json.Unmarshal(value, &cmd); err != nil {
		return nil, errors.NewErrorDetails(err.Error(), string(errors.GeneralBadRequestError), "payload")
	}
	return cmd.ToMessage()
}
