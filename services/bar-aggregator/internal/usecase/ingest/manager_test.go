package ingest

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/util"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/componentry"
	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	barpublisherv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar-publisher/v1"
	barpublisherv1_mock "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar-publisher/v1/mock"
	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
	questdbbar "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/infrastructure/questdb/bar"
	questdbbarmock "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/infrastructure/questdb/bar/mock"
	redisbarmock "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/infrastructure/redis/bar/mock"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testFixture struct {
	repository *questdbbarmock.MockBarRepository
	cache      *redisbarmock.MockLatestBarStore
	publisher  *barpublisherv1_mock.MockBarPublisher
	metrics    *metrics.Metrics
	manager    *Manager
}

func setupTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)
	f := &testFixture{
		repository: questdbbarmock.NewMockBarRepository(ctrl),
		cache:      redisbarmock.NewMockLatestBarStore(ctrl),
		publisher:  barpublisherv1_mock.NewMockBarPublisher(ctrl),
		metrics:    metrics.NewNop(),
	}
	f.manager = NewManager(
		componentry.NewContext(logger.NewNop()),
		Sinks{Repository: f.repository, Cache: f.cache, Publisher: f.publisher},
		f.metrics,
		16,
	)
	return f
}

func testDelivery(t *testing.T) aggregationv1.DataDelivery {
	barType, err := barv1.ParseBarType("AUDUSD.FXCM-1-MINUTE-BID")
	require.NoError(t, err)

	return aggregationv1.DataDelivery{
		ID:        "id-7",
		Timestamp: time.Date(2024, time.March, 14, 10, 16, 0, 1000, time.UTC),
		Data: aggregationv1.BarClosed{
			BarType: barType,
			Bar: barv1.Bar{
				Open:      decimal.RequireFromString("0.8"),
				High:      decimal.RequireFromString("0.8001"),
				Low:       decimal.RequireFromString("0.7998"),
				Close:     decimal.RequireFromString("0.80005"),
				Volume:    4,
				Timestamp: time.Date(2024, time.March, 14, 10, 16, 0, 0, time.UTC),
			},
			AverageSpread: decimal.RequireFromString("0.0002"),
		},
	}
}

func TestManager_Ingest(t *testing.T) {
	delivery := testDelivery(t)

	testCases := []struct {
		name     string
		mockFn   func(f *testFixture)
		assertFn func(t *testing.T, f *testFixture)
	}{
		{
			name: "every sink receives the bar",
			mockFn: func(f *testFixture) {
				gomock.InOrder(
					f.repository.EXPECT().Store(gomock.Any(), questdbbar.FromDelivery(delivery)).
						DoAndReturn(func(ctx context.Context, _ *questdbbar.Bar) error {
							assert.Equal(t, "id-7", util.GetEventID(ctx))
							return nil
						}),
					f.cache.EXPECT().Save(gomock.Any(), barpublisherv1.NewBarEvent(delivery)).Return(nil),
					f.publisher.EXPECT().PublishBar(gomock.Any(), barpublisherv1.NewBarEvent(delivery)).Return(nil),
				)
			},
			assertFn: func(t *testing.T, f *testFixture) {
				assert.Zero(t, testutil.ToFloat64(f.metrics.IngestFailures.WithLabelValues(SinkQuestDB)))
			},
		},
		{
			name: "a failing sink does not stop the others",
			mockFn: func(f *testFixture) {
				f.repository.EXPECT().Store(gomock.Any(), gomock.Any()).Return(stderrors.New("questdb down"))
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				f.publisher.EXPECT().PublishBar(gomock.Any(), gomock.Any()).Return(stderrors.New("broker down"))
			},
			assertFn: func(t *testing.T, f *testFixture) {
				assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.IngestFailures.WithLabelValues(SinkQuestDB)))
				assert.Zero(t, testutil.ToFloat64(f.metrics.IngestFailures.WithLabelValues(SinkRedis)))
				assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.IngestFailures.WithLabelValues(SinkKafka)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := setupTestFixture(t)
			tc.mockFn(f)
			f.manager.handle(context.Background(), delivery)
			tc.assertFn(t, f)
		})
	}
}

func TestManager_NilSinksAreSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := barpublisherv1_mock.NewMockBarPublisher(ctrl)
	publisher.EXPECT().PublishBar(gomock.Any(), gomock.Any()).Return(nil)

	manager := NewManager(componentry.NewContext(logger.NewNop()), Sinks{Publisher: publisher}, metrics.NewNop(), 16)
	manager.handle(context.Background(), testDelivery(t))
}

func TestManager_IgnoresOtherMessages(t *testing.T) {
	f := setupTestFixture(t)
	f.manager.handle(context.Background(), aggregationv1.MarketOpened{Timestamp: time.Now()})
}

func TestManager_StopFlushesQueuedBars(t *testing.T) {
	f := setupTestFixture(t)
	f.repository.EXPECT().Store(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.publisher.EXPECT().PublishBar(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	require.NoError(t, f.manager.Start(context.Background()))
	assert.True(t, f.manager.Send(testDelivery(t)))
	assert.True(t, f.manager.Send(testDelivery(t)))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.manager.Stop(ctx))

	assert.False(t, f.manager.Send(testDelivery(t)))
}
