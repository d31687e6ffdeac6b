package barpublisher

import (
	"context"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	barpublisherv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar-publisher/v1"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/config"
	"github.com/segmentio/kafka-go"
)

// MessageWriter writes to a Kafka topic. *kafka.Writer satisfies it.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher represents a Kafka Publisher for publishing closed bars.
type Publisher struct {
	kafkaWriter MessageWriter
	logger      logger.Interface
}

// NewPublisher creates a new Kafka publisher for publishing closed bars.
func NewPublisher(config config.BarKafkaConfig, logger logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: config.Brokers,
		Topic:   config.Topic,
	})

	return NewPublisherWithWriter(kafkaWriter, logger)
}

// NewPublisherWithWriter creates a publisher on an existing writer.
func NewPublisherWithWriter(writer MessageWriter, logger logger.Interface) *Publisher {
	return &Publisher{
		kafkaWriter: writer,
		logger:      logger,
	}
}

// PublishBar publishes a bar event keyed by its bar type so one bar type stays on one partition.
func (p *Publisher) PublishBar(ctx context.Context, event *barpublisherv1.BarEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.BarType),
		Value: event.ToBytes(),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "action", Value: "publish_bar"},
			logger.Field{Key: "bar_type", Value: event.BarType},
			logger.Field{Key: "bar_id", Value: event.ID},
		)
		return errors.NewTracer("failed to publish bar event").Wrap(errors.NewErrorDetails(err.Error(), string(errors.KafkaPublishError), "bar"))
	}
	return nil
}

// Close closes the underlying writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
