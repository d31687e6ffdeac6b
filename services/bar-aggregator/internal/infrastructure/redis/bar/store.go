package bar

import (
	"context"
	"encoding/json"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	barpublisherv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar-publisher/v1"
)

// Store caches closed bars in Redis under <prefix>latest:<bar type> and publishes
// them on the <prefix>bars:<bar type> channel.
type Store struct {
	redisclient redis.Client
	config      *redis.Config
	logger      logger.Interface
}

// NewStore creates a new latest bar store.
func NewStore(redisclient redis.Client, config *redis.Config, logger logger.Interface) *Store {
	return &Store{
		redisclient: redisclient,
		config:      config,
		logger:      logger,
	}
}

// LatestKey returns the cache key of a bar type.
func (s *Store) LatestKey(barType string) string {
	return s.config.Key("latest:" + barType)
}

// Channel returns the pub/sub channel of a bar type.
func (s *Store) Channel(barType string) string {
	return s.config.Key("bars:" + barType)
}

// Save caches the bar and publishes it.
func (s *Store) Save(ctx context.Context, event *barpublisherv1.BarEvent) error {
	buf, err := json.Marshal(event)
	if err != nil {
		return errors.NewTracer("bar_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.LatestKey(event.BarType), buf, s.config.DefaultTTL); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "bar_type", Value: event.BarType},
			logger.Field{Key: "action", Value: "cache bar"},
		)
		return errors.NewTracer("bar_store_error").Wrap(err)
	}

	received, err := s.redisclient.Publish(ctx, s.Channel(event.BarType), buf)
	if err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "bar_type", Value: event.BarType},
			logger.Field{Key: "action", Value: "publish bar"},
		)
		return errors.NewTracer("bar_publish_error").Wrap(err)
	}

	s.logger.DebugContext(ctx, "Bar cached",
		logger.Field{Key: "bar_type", Value: event.BarType},
		logger.Field{Key: "receivers", Value: received},
	)
	return nil
}

// Latest loads the last cached bar of a bar type. It returns nil when nothing is cached.
func (s *Store) Latest(ctx context.Context, barType string) (*barpublisherv1.BarEvent, error) {
	data, err := s.redisclient.Get(ctx, s.LatestKey(barType))
	if err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "bar_type", Value: barType},
			logger.Field{Key: "action", Value: "load bar"},
		)
		return nil, errors.NewTracer("bar_load_error").Wrap(err)
	}

	if data == "" {
		return nil, nil
	}

	var event barpublisherv1.BarEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, errors.NewTracer("bar_unmarshal_error").Wrap(err)
	}

	return &event, nil
}
