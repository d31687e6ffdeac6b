package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	feedv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/feed/v1"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/metrics"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
)

const readBackoff = 100 * time.Millisecond

// Decoder turns a Kafka message value into a message for the receiver.
type Decoder func(value []byte) (aggregationv1.Message, error)

// Consumer reads a topic, decodes every message and sends it to a receiver.
// Messages that fail to decode are logged and committed so they are not redelivered.
type Consumer struct {
	name     string
	reader   feedv1.MessageReader
	decode   Decoder
	receiver aggregationv1.Receiver
	logger   logger.Interface
	latency  prometheus.Observer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTickConsumer creates a consumer for the tick topic.
func NewTickConsumer(config config.TickKafkaConfig, receiver aggregationv1.Receiver, log logger.Interface, m *metrics.Metrics) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		GroupID:     config.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	c := NewConsumer("tick", reader, feedv1.DecodeTick, receiver, log)
	c.latency = m.ConsumerLatency
	return c
}

// NewCommandConsumer creates a consumer for the subscription command topic.
func NewCommandConsumer(config config.CommandKafkaConfig, receiver aggregationv1.Receiver, log logger.Interface) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		GroupID:     config.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	return NewConsumer("subscription", reader, feedv1.DecodeSubscriptionCommand, receiver, log)
}

// NewConsumer creates a consumer on an existing reader.
func NewConsumer(name string, reader feedv1.MessageReader, decode Decoder, receiver aggregationv1.Receiver, log logger.Interface) *Consumer {
	return &Consumer{
		name:     name,
		reader:   reader,
		decode:   decode,
		receiver: receiver,
		logger:   log.WithFields(logger.NewField("consumer", name)),
	}
}

// Start starts reading in the background.
func (c *Consumer) Start(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.run()

	c.logger.InfoContext(ctx, "starting consumer", logger.Field{
		Key:   "action",
		Value: c.name + "_consumer_start",
	})
	return nil
}

// Stop cancels the read loop, waits for it and closes the reader.
func (c *Consumer) Stop(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		c.logger.Warn("Consumer stop timeout exceeded")
		return ctx.Err()
	}

	c.logger.InfoContext(ctx, "stopping consumer", logger.Field{
		Key:   "action",
		Value: c.name + "_consumer_stop",
	})
	return c.reader.Close()
}

func (c *Consumer) run() {
	defer c.wg.Done()

	for {
		msg, err := c.reader.ReadMessage(c.ctx)
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			c.logger.ErrorContext(c.ctx, err, logger.Field{
				Key:   "action",
				Value: "read_message",
			})

			select {
			case <-c.ctx.Done():
				return
			case <-time.After(readBackoff):
			}
			continue
		}

		c.process(c.ctx, msg)
	}
}

func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	start := time.Now()

	decoded, err := c.decode(msg.Value)
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "dropping undecodable message",
			logger.Field{Key: "action", Value: "decode_message"},
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "partition", Value: msg.Partition},
			logger.Field{Key: "offset", Value: msg.Offset},
		)
	case !c.receiver.Send(decoded):
		c.logger.WarnContext(ctx, "receiver stopped, message dropped",
			logger.Field{Key: "action", Value: "send_message"},
			logger.Field{Key: "offset", Value: msg.Offset},
		)
	}

	if c.latency != nil {
		c.latency.Observe(time.Since(start).Seconds())
	}

	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "commit_message",
		})
	}
}
