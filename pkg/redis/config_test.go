package redis

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(c *Config)
		assertFn func(t *testing.T, err error)
	}{
		{
			name:   "default config is valid",
			mutate: func(c *Config) {},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "empty addresses",
			mutate: func(c *Config) { c.Addrs = nil },
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.HasCode(err, errors.RedisConfigError))
			},
		},
		{
			name:   "unknown mode",
			mutate: func(c *Config) { c.Mode = "sentinel" },
			assertFn: func(t *testing.T, err error) {
				assert.EqualError(t, err, "Invalid Redis mode")
			},
		},
		{
			name:   "non positive connect timeout",
			mutate: func(c *Config) { c.ConnectTimeout = 0 },
			assertFn: func(t *testing.T, err error) {
				assert.EqualError(t, err, "Invalid Redis connect timeout")
			},
		},
		{
			name:   "negative retries",
			mutate: func(c *Config) { c.MaxRetries = -1 },
			assertFn: func(t *testing.T, err error) {
				assert.EqualError(t, err, "Invalid Redis max retries")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			tc.assertFn(t, cfg.Validate())
		})
	}
}

func TestConfig_Key(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "bars:latest:AUDUSD.FXCM-1-MINUTE-BID", cfg.Key("latest:AUDUSD.FXCM-1-MINUTE-BID"))
}

func TestClient_Connect_NilConfig(t *testing.T) {
	c := NewClient(logger.NewNop(), nil)
	err := c.Connect(context.Background())
	assert.True(t, errors.HasCode(err, errors.RedisConfigError))
}

func TestClient_Reconnect_Cancelled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRetryBackoff = time.Second
	c := NewClient(logger.NewNop(), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, c.Reconnect(ctx))
}
