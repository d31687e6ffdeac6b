package barpublisherv1

import (
	"testing"
	"time"

	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBarEvent(t *testing.T) {
	barType, err := barv1.ParseBarType("AUDUSD.FXCM-1-MINUTE-BID")
	require.NoError(t, err)

	closeTime := time.Date(2024, time.March, 14, 10, 16, 0, 0, time.UTC)
	delivery := aggregationv1.DataDelivery{
		ID:        "id-1",
		Timestamp: closeTime.Add(time.Millisecond),
		Data: aggregationv1.BarClosed{
			BarType: barType,
			Bar: barv1.Bar{
				Open:      decimal.RequireFromString("0.8"),
				High:      decimal.RequireFromString("0.8001"),
				Low:       decimal.RequireFromString("0.7998"),
				Close:     decimal.RequireFromString("0.80005"),
				Volume:    4,
				Timestamp: closeTime,
			},
			AverageSpread: decimal.RequireFromString("0.0002"),
		},
	}

	event := NewBarEvent(delivery)
	assert.Equal(t, "AUDUSD.FXCM-1-MINUTE-BID", event.BarType)
	assert.Equal(t, "AUDUSD.FXCM", event.Symbol)
	assert.Equal(t, int64(4), event.Volume)
	assert.Equal(t, closeTime, event.Timestamp)

	decoded := FromBytes(event.ToBytes())
	require.NotNil(t, decoded)
	assert.Equal(t, event.ID, decoded.ID)
	assert.True(t, event.Close.Equal(decoded.Close))
	assert.True(t, event.AverageSpread.Equal(decoded.AverageSpread))
	assert.True(t, event.Timestamp.Equal(decoded.Timestamp))

	assert.Nil(t, FromBytes([]byte("not json")))
}
