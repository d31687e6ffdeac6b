package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
)

// Config represents the application configuration.
type Config struct {
	App          AppConfig          `envPrefix:"APP_"`
	Aggregation  AggregationConfig  `envPrefix:"AGGREGATION_"`
	Ingest       IngestConfig       `envPrefix:"INGEST_"`
	TickKafka    TickKafkaConfig    `envPrefix:"TICK_KAFKA_"`
	CommandKafka CommandKafkaConfig `envPrefix:"COMMAND_KAFKA_"`
	BarKafka     BarKafkaConfig     `envPrefix:"BAR_KAFKA_"`
	QuestDB      questdb.Config     `envPrefix:"QUESTDB_"`
	Redis        redis.Config       `envPrefix:"REDIS_"`
	Metrics      MetricsConfig      `envPrefix:"METRICS_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name            string        `env:"NAME" envDefault:"bar-aggregator"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// AggregationConfig configures the controller, its scheduler and the market session.
type AggregationConfig struct {
	// Subscriptions are bar types subscribed at startup, e.g. AUDUSD.FXCM-1-MINUTE-BID.
	Subscriptions    []string      `env:"SUBSCRIPTIONS" envSeparator:","`
	MailboxCapacity  int           `env:"MAILBOX_CAPACITY" envDefault:"1024"`
	MarketOpen       string        `env:"MARKET_OPEN" envDefault:"0 21 * * SUN"`
	MarketClose      string        `env:"MARKET_CLOSE" envDefault:"0 20 * * SAT"`
	MisfireThreshold time.Duration `env:"MISFIRE_THRESHOLD" envDefault:"1s"`
}

// IngestConfig toggles the sinks closed bars are delivered to.
type IngestConfig struct {
	StoreBars   bool `env:"STORE_BARS" envDefault:"true"`
	CacheBars   bool `env:"CACHE_BARS" envDefault:"true"`
	PublishBars bool `env:"PUBLISH_BARS" envDefault:"true"`
}

// TickKafkaConfig represents the tick feed Kafka configuration.
type TickKafkaConfig struct {
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic         string   `env:"TOPIC" envDefault:"ticks"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"bar-aggregator"`
}

// CommandKafkaConfig represents the subscription command Kafka configuration.
type CommandKafkaConfig struct {
	Enabled       bool     `env:"ENABLED" envDefault:"true"`
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic         string   `env:"TOPIC" envDefault:"bar-subscriptions"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"bar-aggregator"`
}

// BarKafkaConfig represents the closed bar Kafka configuration.
type BarKafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"bars"`
}

// MetricsConfig represents the metrics and health HTTP server configuration.
type MetricsConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Port    int    `env:"PORT" envDefault:"9090"`
	Path    string `env:"PATH" envDefault:"/metrics"`
}

// Addr returns the listen address of the metrics server.
func (m MetricsConfig) Addr() string {
	return fmt.Sprintf(":%d", m.Port)
}

// BarTypes parses the startup subscriptions. Every malformed entry is reported.
func (a AggregationConfig) BarTypes() ([]barv1.BarType, error) {
	var (
		barTypes []barv1.BarType
		baseErr  = errors.NewBaseError()
	)

	for _, raw := range a.Subscriptions {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		barType, err := barv1.ParseBarType(raw)
		if err != nil {
			baseErr.AddErrorDetails(errors.Newf(errors.InvalidConfigurationError, "AGGREGATION_SUBSCRIPTIONS", "subscription %q: %s", raw, err))
			continue
		}
		barTypes = append(barTypes, barType)
	}

	if baseErr.HasDetails() {
		return nil, baseErr
	}
	return barTypes, nil
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Aggregation.MailboxCapacity < 0 {
		return nil, errors.Newf(errors.InvalidConfigurationError, "AGGREGATION_MAILBOX_CAPACITY", "mailbox capacity must not be negative, got %d", cfg.Aggregation.MailboxCapacity)
	}

	return cfg, nil
}
