package bar

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/exchange/pkg/errors"
	questdbmock "github.com/muhammadchandra19/exchange/pkg/questdb/mock"
	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *string:
			*p = r.values[i].(string)
		case *float64:
			*p = r.values[i].(float64)
		case *int64:
			*p = r.values[i].(int64)
		}
	}
	return nil
}

func TestFromDelivery(t *testing.T) {
	barType, err := barv1.ParseBarType("AUDUSD.FXCM-1-MINUTE-BID")
	require.NoError(t, err)
	ts := time.Date(2024, time.March, 14, 10, 16, 0, 0, time.UTC)

	row := FromDelivery(aggregationv1.DataDelivery{
		ID: "id-1",
		Data: aggregationv1.BarClosed{
			BarType: barType,
			Bar: barv1.Bar{
				Open:      decimal.RequireFromString("0.8"),
				High:      decimal.RequireFromString("0.8001"),
				Low:       decimal.RequireFromString("0.7998"),
				Close:     decimal.RequireFromString("0.80005"),
				Volume:    4,
				Timestamp: ts,
			},
			AverageSpread: decimal.RequireFromString("0.0002"),
		},
	})

	assert.Equal(t, &Bar{
		Timestamp:     ts,
		BarType:       "AUDUSD.FXCM-1-MINUTE-BID",
		Symbol:        "AUDUSD.FXCM",
		Open:          0.8,
		High:          0.8001,
		Low:           0.7998,
		Close:         0.80005,
		Volume:        4,
		AverageSpread: 0.0002,
	}, row)
}

func TestBar_Store(t *testing.T) {
	now := time.Now()
	testData := &Bar{
		Timestamp:     now,
		BarType:       "AUDUSD.FXCM-1-MINUTE-BID",
		Symbol:        "AUDUSD.FXCM",
		Open:          0.8,
		High:          0.8001,
		Low:           0.7998,
		Close:         0.80005,
		Volume:        4,
		AverageSpread: 0.0002,
	}

	testCases := []struct {
		name     string
		mockFn   func(mock *questdbmock.MockQuestDBClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(mock *questdbmock.MockQuestDBClient) {
				mock.EXPECT().Exec(
					gomock.Any(),
					insertBarQuery,
					testData.Timestamp,
					testData.BarType,
					testData.Symbol,
					testData.Open,
					testData.High,
					testData.Low,
					testData.Close,
					testData.Volume,
					testData.AverageSpread,
				).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error - exec fails",
			mockFn: func(mock *questdbmock.MockQuestDBClient) {
				mock.EXPECT().Exec(gomock.Any(), insertBarQuery, gomock.Any(), gomock.Any(), gomock.Any(),
					gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				).Return(stderrors.New("exec failed"))
			},
			assertFn: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.QuestDBStoreError))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := questdbmock.NewMockQuestDBClient(ctrl)
			tc.mockFn(client)

			repo := NewRepository(client)
			tc.assertFn(t, repo.Store(context.Background(), testData))
		})
	}
}

func TestBar_GetLatest(t *testing.T) {
	ts := time.Date(2024, time.March, 14, 10, 16, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		row      pgx.Row
		assertFn func(t *testing.T, bar *Bar, err error)
	}{
		{
			name: "found",
			row: fakeRow{values: []any{
				ts, "AUDUSD.FXCM-1-MINUTE-BID", "AUDUSD.FXCM", 0.8, 0.8001, 0.7998, 0.80005, int64(4), 0.0002,
			}},
			assertFn: func(t *testing.T, bar *Bar, err error) {
				require.NoError(t, err)
				require.NotNil(t, bar)
				assert.Equal(t, ts, bar.Timestamp)
				assert.Equal(t, 0.80005, bar.Close)
				assert.Equal(t, int64(4), bar.Volume)
			},
		},
		{
			name: "no rows",
			row:  fakeRow{err: pgx.ErrNoRows},
			assertFn: func(t *testing.T, bar *Bar, err error) {
				assert.NoError(t, err)
				assert.Nil(t, bar)
			},
		},
		{
			name: "scan fails",
			row:  fakeRow{err: stderrors.New("connection reset")},
			assertFn: func(t *testing.T, bar *Bar, err error) {
				assert.Error(t, err)
				assert.Nil(t, bar)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := questdbmock.NewMockQuestDBClient(ctrl)
			client.EXPECT().QueryRow(gomock.Any(), latestBarQuery, "AUDUSD.FXCM-1-MINUTE-BID").Return(tc.row)

			repo := NewRepository(client)
			bar, err := repo.GetLatest(context.Background(), "AUDUSD.FXCM-1-MINUTE-BID")
			tc.assertFn(t, bar, err)
		})
	}
}
