// Package kafka publishes order domain events to the message broker.
//
// Delivery is at-least-once: the writer requires acks from all in-sync
// replicas and Publish blocks until the broker acknowledges, so a nil error
// means the event is durably written.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/entity"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/ports"
)

// Default topics. The search indexer consumes order.created; the
// notification service consumes order.received.
const (
	TopicOrderCreated  = "order.created"
	TopicOrderReceived = "order.received"
)

// Publisher is the kafka-go backed ports.EventPublisher.
type Publisher struct {
	created  *kafka.Writer
	received *kafka.Writer
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher builds writers for both order topics against the given
// brokers.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		created:  newWriter(brokers, TopicOrderCreated),
		received: newWriter(brokers, TopicOrderReceived),
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// PublishOrderCreated emits the denormalized snapshot for search indexing.
// Keyed by order reference so all events of one order land in one partition.
func (p *Publisher) PublishOrderCreated(ctx context.Context, event *entity.OrderCreatedEvent) error {
	return publish(ctx, p.created, event.Reference, event)
}

// PublishOrderReceived emits the notification payload.
func (p *Publisher) PublishOrderReceived(ctx context.Context, event *entity.OrderReceivedEvent) error {
	return publish(ctx, p.received, event.Reference, event)
}

// Close flushes and closes both writers.
func (p *Publisher) Close() error {
	if err := p.created.Close(); err != nil {
		return err
	}
	return p.received.Close()
}

func publish(ctx context.Context, w *kafka.Writer, key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal event for %s: %w", w.Topic, err)
	}

	err = w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("kafka: write to %s: %w", w.Topic, err)
	}
	return nil
}
