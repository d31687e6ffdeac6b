package barv1

import (
	"testing"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSymbol(t *testing.T) {
	testCases := []struct {
		input    string
		expected Symbol
		code     errors.ErrorCode
	}{
		{input: "AUDUSD.FXCM", expected: Symbol{Code: "AUDUSD", Venue: "FXCM"}},
		{input: "eurusd.fxcm", expected: Symbol{Code: "EURUSD", Venue: "FXCM"}},
		{input: "BRK.B.NYSE", expected: Symbol{Code: "BRK.B", Venue: "NYSE"}},
		{input: "AUDUSD", code: errors.InvalidSymbolError},
		{input: ".FXCM", code: errors.InvalidSymbolError},
		{input: "AUDUSD.", code: errors.InvalidSymbolError},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			symbol, err := ParseSymbol(tc.input)
			if tc.code != "" {
				assert.True(t, errors.HasCode(err, tc.code))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, symbol)
		})
	}
}

func TestParseBarType(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		assertFn func(t *testing.T, bt BarType, err error)
	}{
		{
			name:  "valid",
			input: "AUDUSD.FXCM-1-MINUTE-BID",
			assertFn: func(t *testing.T, bt BarType, err error) {
				require.NoError(t, err)
				assert.Equal(t, NewSymbol("AUDUSD", "FXCM"), bt.Symbol)
				assert.Equal(t, MustBarSpecification(1, ResolutionMinute, Bid), bt.Specification)
				assert.Equal(t, "AUDUSD.FXCM-1-MINUTE-BID", bt.String())
			},
		},
		{
			name:  "symbol with dash",
			input: "BTC-USD.COINBASE-100-TICK-MID",
			assertFn: func(t *testing.T, bt BarType, err error) {
				require.NoError(t, err)
				assert.Equal(t, "BTC-USD", bt.Symbol.Code)
				assert.True(t, bt.Specification.IsTickBar())
			},
		},
		{
			name:  "too short",
			input: "AUDUSD.FXCM-1-MINUTE",
			assertFn: func(t *testing.T, bt BarType, err error) {
				assert.True(t, errors.HasCode(err, errors.InvalidBarTypeError))
			},
		},
		{
			name:  "bad symbol",
			input: "AUDUSD-1-MINUTE-BID",
			assertFn: func(t *testing.T, bt BarType, err error) {
				assert.True(t, errors.HasCode(err, errors.InvalidSymbolError))
			},
		},
		{
			name:  "bad specification",
			input: "AUDUSD.FXCM-0-MINUTE-BID",
			assertFn: func(t *testing.T, bt BarType, err error) {
				assert.True(t, errors.HasCode(err, errors.InvalidBarSpecificationError))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bt, err := ParseBarType(tc.input)
			tc.assertFn(t, bt, err)
		})
	}
}

func TestTick_Price(t *testing.T) {
	tick := Tick{
		Symbol: NewSymbol("AUDUSD", "FXCM"),
		Bid:    decimal.RequireFromString("0.80000"),
		Ask:    decimal.RequireFromString("0.80010"),
	}

	assert.True(t, decimal.RequireFromString("0.80000").Equal(tick.Price(Bid)))
	assert.True(t, decimal.RequireFromString("0.80010").Equal(tick.Price(Ask)))
	assert.True(t, decimal.RequireFromString("0.80005").Equal(tick.Price(Mid)))
	assert.True(t, decimal.RequireFromString("0.0001").Equal(tick.Spread()))
}

func TestBar_String(t *testing.T) {
	bar := Bar{
		Open:      decimal.RequireFromString("0.80000"),
		High:      decimal.RequireFromString("0.80010"),
		Low:       decimal.RequireFromString("0.79980"),
		Close:     decimal.RequireFromString("0.80005"),
		Volume:    4,
		Timestamp: time.Date(2024, 3, 14, 10, 16, 0, 0, time.UTC),
	}

	assert.Equal(t, "0.8,0.8001,0.7998,0.80005,4,2024-03-14T10:16:00Z", bar.String())
}
