package bootstrap

import (
	"testing"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	questdbmock "github.com/muhammadchandra19/exchange/pkg/questdb/mock"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	redis_mock "github.com/muhammadchandra19/exchange/pkg/redis/mock"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/componentry"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/metrics"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Aggregation: config.AggregationConfig{
			MailboxCapacity: 16,
			MarketOpen:      "0 21 * * SUN",
			MarketClose:     "0 20 * * SAT",
		},
		Ingest: config.IngestConfig{StoreBars: true, CacheBars: true},
		Redis:  *redis.DefaultConfig(),
	}
}

func TestBootstrap_RegisterRepository(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(b *Bootstrap, ctrl *gomock.Controller)
		assertFn func(t *testing.T, r Repository)
	}{
		{
			name: "both clients",
			mutate: func(b *Bootstrap, ctrl *gomock.Controller) {
				b.QuestDB = questdbmock.NewMockQuestDBClient(ctrl)
				b.Redis = redis_mock.NewMockClient(ctrl)
			},
			assertFn: func(t *testing.T, r Repository) {
				assert.NotNil(t, r.BarRepository)
				assert.NotNil(t, r.LatestBarStore)
			},
		},
		{
			name:   "no clients",
			mutate: func(b *Bootstrap, ctrl *gomock.Controller) {},
			assertFn: func(t *testing.T, r Repository) {
				assert.Nil(t, r.BarRepository)
				assert.Nil(t, r.LatestBarStore)
			},
		},
		{
			name: "sinks switched off",
			mutate: func(b *Bootstrap, ctrl *gomock.Controller) {
				b.QuestDB = questdbmock.NewMockQuestDBClient(ctrl)
				b.Redis = redis_mock.NewMockClient(ctrl)
				b.Config.Ingest = config.IngestConfig{}
			},
			assertFn: func(t *testing.T, r Repository) {
				assert.Nil(t, r.BarRepository)
				assert.Nil(t, r.LatestBarStore)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			b := &Bootstrap{Config: testConfig(), Logger: logger.NewNop()}
			tc.mutate(b, ctrl)

			b.registerRepository()
			tc.assertFn(t, b.Repository)
		})
	}
}

func newTestBootstrap(t *testing.T, cfg *config.Config) *Bootstrap {
	b := &Bootstrap{
		Config:  cfg,
		Logger:  logger.NewNop(),
		Metrics: metrics.NewNop(),
		Context: componentry.NewContext(logger.NewNop()),
	}
	b.registerRepository()
	return b
}

func TestBootstrap_RegisterUsecase(t *testing.T) {
	b := newTestBootstrap(t, testConfig())
	require.NoError(t, b.registerUsecase())

	assert.NotNil(t, b.Usecase.Scheduler)
	assert.NotNil(t, b.Usecase.Ingest)
	assert.NotNil(t, b.Usecase.Controller)
	assert.Nil(t, b.Usecase.BarPublisher)
}

func TestBootstrap_RegisterUsecase_InvalidSession(t *testing.T) {
	cfg := testConfig()
	cfg.Aggregation.MarketOpen = "every sunday"

	b := newTestBootstrap(t, cfg)
	err := b.registerUsecase()
	assert.True(t, errors.HasCode(err, errors.InvalidCronExpressionError))
}

func TestBootstrap_SubscribeConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Aggregation.Subscriptions = []string{"AUDUSD.FXCM-1-MINUTE-BID", "bogus"}

	b := newTestBootstrap(t, cfg)
	require.NoError(t, b.registerUsecase())

	err := b.subscribeConfigured()
	assert.True(t, errors.HasCode(err, errors.InvalidConfigurationError))
}
