package barpublisherv1

import "context"

// BarPublisher defines the interface for publishing closed bars.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=barpublisherv1_mock
type BarPublisher interface {
	// PublishBar publishes a bar event to the Kafka topic.
	PublishBar(ctx context.Context, event *BarEvent) error
}
