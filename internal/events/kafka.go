package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic receives payment events when the configuration names none.
const DefaultTopic = "xrpl_payments"

var ErrNoBrokers = errors.New("no kafka brokers configured")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes each event as one JSON message keyed by its
// reference tag, so events for the same offer land on the same partition.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if topic == "" {
		topic = DefaultTopic
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event PaymentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding payment event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ReferenceTag),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("publishing payment event %s: %w", event.EventID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
