package feedv1

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageReader reads a Kafka topic. *kafka.Reader satisfies it.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=feedv1_mock
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
