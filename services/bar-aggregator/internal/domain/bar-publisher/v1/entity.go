package barpublisherv1

import (
	"encoding/json"
	"time"

	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	"github.com/shopspring/decimal"
)

// BarEvent is the JSON payload published for every closed bar.
type BarEvent struct {
	ID            string          `json:"id"`
	BarType       string          `json:"bar_type"`
	Symbol        string          `json:"symbol"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Close         decimal.Decimal `json:"close"`
	Volume        int64           `json:"volume"`
	AverageSpread decimal.Decimal `json:"average_spread"`
	Timestamp     time.Time       `json:"timestamp"`
	DeliveredAt   time.Time       `json:"delivered_at"`
}

// NewBarEvent creates a bar event from a delivery.
func NewBarEvent(delivery aggregationv1.DataDelivery) *BarEvent {
	closed := delivery.Data
	return &BarEvent{
		ID:            delivery.ID,
		BarType:       closed.BarType.String(),
		Symbol:        closed.BarType.Symbol.String(),
		Open:          closed.Bar.Open,
		High:          closed.Bar.High,
		Low:           closed.Bar.Low,
		Close:         closed.Bar.Close,
		Volume:        closed.Bar.Volume,
		AverageSpread: closed.AverageSpread,
		Timestamp:     closed.Bar.Timestamp,
		DeliveredAt:   delivery.Timestamp,
	}
}

// ToBytes converts the bar event to a byte array.
func (e *BarEvent) ToBytes() []byte {
	buf, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return buf
}

// FromBytes converts a byte array to a bar event.
func FromBytes(data []byte) *BarEvent {
	var event BarEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
