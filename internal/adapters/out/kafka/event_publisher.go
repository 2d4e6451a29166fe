// Package kafka publishes depot domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"depot/internal/core/domain/model/kernel"

	kafkago "github.com/segmentio/kafka-go"
)

// Header keys set on every published message.
const (
	HeaderEventID   = "event-id"
	HeaderEventName = "event-name"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// EventMessage is the JSON value of a published event.
type EventMessage struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	AggregateKey string            `json:"aggregateKey"`
	OccurredAt   time.Time         `json:"occurredAt"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

// EventPublisher writes events keyed by aggregate, so the events of one
// record stay ordered within a partition.
type EventPublisher struct {
	writer messageWriter
}

func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return newEventPublisher(&kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	})
}

func newEventPublisher(writer messageWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish writes the batch in one call. Kafka either accepts every message or
// the call fails and the caller retries the whole batch.
func (p *EventPublisher) Publish(ctx context.Context, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(events))
	for _, e := range events {
		msg, err := toMessage(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(e kernel.DomainEvent) (kafkago.Message, error) {
	value, err := json.Marshal(EventMessage{
		ID:           e.ID().String(),
		Name:         e.Name(),
		AggregateKey: e.AggregateKey(),
		OccurredAt:   e.OccurredAt(),
		Attributes:   e.Attributes(),
	})
	if err != nil {
		return kafkago.Message{}, err
	}

	return kafkago.Message{
		Key:   []byte(e.AggregateKey()),
		Value: value,
		Time:  e.OccurredAt(),
		Headers: []kafkago.Header{
			{Key: HeaderEventID, Value: []byte(e.ID().String())},
			{Key: HeaderEventName, Value: []byte(e.Name())},
		},
	}, nil
}
