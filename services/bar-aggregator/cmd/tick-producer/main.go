package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	feedv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/feed/v1"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// quote is the random-walk state of one symbol.
type quote struct {
	symbol string
	mid    decimal.Decimal
	spread decimal.Decimal
}

// walker generates FX ticks by moving every mid price a few pips per step.
type walker struct {
	rnd    *rand.Rand
	quotes []*quote
	pip    decimal.Decimal
	maxPip int
}

func newWalker(seed int64, symbols []string, basePrice, spread decimal.Decimal, maxPip int) *walker {
	w := &walker{
		rnd:    rand.New(rand.NewSource(seed)),
		pip:    decimal.New(1, -4),
		maxPip: maxPip,
	}
	for _, s := range symbols {
		w.quotes = append(w.quotes, &quote{symbol: s, mid: basePrice, spread: spread})
	}
	return w
}

// next returns one tick per symbol, all stamped at ts.
func (w *walker) next(ts time.Time) []feedv1.TickEvent {
	half := decimal.NewFromInt(2)
	events := make([]feedv1.TickEvent, 0, len(w.quotes))

	for _, q := range w.quotes {
		step := int64(w.rnd.Intn(2*w.maxPip+1) - w.maxPip)
		mid := q.mid.Add(w.pip.Mul(decimal.NewFromInt(step)))
		if mid.LessThanOrEqual(q.spread) {
			mid = q.mid
		}
		q.mid = mid

		halfSpread := q.spread.Div(half)
		events = append(events, feedv1.TickEvent{
			Symbol:    q.symbol,
			Bid:       mid.Sub(halfSpread),
			Ask:       mid.Add(halfSpread),
			Timestamp: ts.UTC(),
		})
	}
	return events
}

func subscriptionCommands(barTypes []string, requester string) []feedv1.SubscriptionCommand {
	var cmds []feedv1.SubscriptionCommand
	for _, bt := range barTypes {
		if bt = strings.TrimSpace(bt); bt == "" {
			continue
		}
		cmds = append(cmds, feedv1.SubscriptionCommand{
			Action:    feedv1.ActionSubscribe,
			BarType:   bt,
			Requester: requester,
		})
	}
	return cmds
}

func main() {
	var (
		brokers      = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic        = flag.String("topic", "ticks", "Kafka tick topic name")
		commandTopic = flag.String("command-topic", "bar-subscriptions", "Kafka subscription command topic name")
		subscribe    = flag.String("subscribe", "", "Bar types to subscribe before sending ticks (comma-separated)")
		symbols      = flag.String("symbols", "AUDUSD.FXCM,EURUSD.FXCM", "Symbols to generate ticks for (comma-separated)")
		delay        = flag.Duration("delay", 250*time.Millisecond, "Delay between tick rounds")
		count        = flag.Int("count", 0, "Number of tick rounds to send (0 = until interrupted)")
		basePrice    = flag.String("base-price", "0.80000", "Starting mid price")
		spread       = flag.String("spread", "0.00020", "Bid/ask spread")
		maxPip       = flag.Int("max-pip", 3, "Largest mid move per round, in pips")
	)
	flag.Parse()

	base, err := decimal.NewFromString(*basePrice)
	if err != nil {
		log.Fatalf("Invalid base price %q: %v", *basePrice, err)
	}
	spr, err := decimal.NewFromString(*spread)
	if err != nil {
		log.Fatalf("Invalid spread %q: %v", *spread, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	addrs := strings.Split(*brokers, ",")

	if cmds := subscriptionCommands(strings.Split(*subscribe, ","), "tick-producer"); len(cmds) > 0 {
		commandWriter := &kafka.Writer{
			Addr:         kafka.TCP(addrs...),
			Topic:        *commandTopic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		}

		msgs := make([]kafka.Message, 0, len(cmds))
		for i := range cmds {
			msgs = append(msgs, kafka.Message{Key: []byte(cmds[i].BarType), Value: cmds[i].ToBytes()})
		}
		if err := commandWriter.WriteMessages(ctx, msgs...); err != nil {
			log.Fatalf("Failed to send subscriptions: %v", err)
		}
		commandWriter.Close()
		log.Printf("Sent %d subscription commands to %s", len(cmds), *commandTopic)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Topic:        *topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	w := newWalker(time.Now().UnixNano(), strings.Split(*symbols, ","), base, spr, *maxPip)

	log.Printf("Sending ticks to Kafka broker: %s, topic: %s", *brokers, *topic)

	sent := 0
	for round := 1; *count == 0 || round <= *count; round++ {
		events := w.next(time.Now())

		msgs := make([]kafka.Message, 0, len(events))
		for i := range events {
			msgs = append(msgs, kafka.Message{Key: []byte(events[i].Symbol), Value: events[i].ToBytes()})
		}

		if err := writer.WriteMessages(ctx, msgs...); err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("Failed to send round %d: %v", round, err)
			continue
		}
		sent += len(msgs)

		if round%100 == 0 {
			log.Printf("Sent %d ticks, last %s bid %s ask %s", sent, events[0].Symbol, events[0].Bid, events[0].Ask)
		}

		select {
		case <-ctx.Done():
		case <-time.After(*delay):
		}
		if ctx.Err() != nil {
			break
		}
	}

	log.Printf("Sent %d ticks", sent)
}
