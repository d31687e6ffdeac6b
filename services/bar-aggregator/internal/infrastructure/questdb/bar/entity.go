package bar

import (
	"time"

	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
)

// Bar is a row of the bars table.
type Bar struct {
	Timestamp     time.Time
	BarType       string
	Symbol        string
	Open          float64
	High          float64
	Low           float64
	Close         float64
	Volume        int64
	AverageSpread float64
}

// FromDelivery converts a delivered bar to a row. QuestDB stores prices as doubles.
func FromDelivery(delivery aggregationv1.DataDelivery) *Bar {
	closed := delivery.Data
	return &Bar{
		Timestamp:     closed.Bar.Timestamp,
		BarType:       closed.BarType.String(),
		Symbol:        closed.BarType.Symbol.String(),
		Open:          closed.Bar.Open.InexactFloat64(),
		High:          closed.Bar.High.InexactFloat64(),
		Low:           closed.Bar.Low.InexactFloat64(),
		Close:         closed.Bar.Close.InexactFloat64(),
		Volume:        closed.Bar.Volume,
		AverageSpread: closed.AverageSpread.InexactFloat64(),
	}
}
