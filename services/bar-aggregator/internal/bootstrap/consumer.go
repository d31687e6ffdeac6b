package bootstrap

import (
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/consumer"
)

// Consumer holds the Kafka consumers feeding the controller.
type Consumer struct {
	TickConsumer    *consumer.Consumer
	CommandConsumer *consumer.Consumer
}

// registerConsumer registers the consumers.
func (b *Bootstrap) registerConsumer() {
	b.Consumer.TickConsumer = consumer.NewTickConsumer(b.Config.TickKafka, b.Usecase.Controller, b.Logger, b.Metrics)
	if b.Config.CommandKafka.Enabled {
		b.Consumer.CommandConsumer = consumer.NewCommandConsumer(b.Config.CommandKafka, b.Usecase.Controller, b.Logger)
	}
}

func (c Consumer) all() []*consumer.Consumer {
	consumers := []*consumer.Consumer{c.TickConsumer}
	if c.CommandConsumer != nil {
		consumers = append(consumers, c.CommandConsumer)
	}
	return consumers
}
