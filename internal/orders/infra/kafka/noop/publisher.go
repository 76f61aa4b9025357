// Package noop provides an EventPublisher that discards events. Used when
// no Kafka broker is configured (local development, some tests).
package noop

import (
	"context"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/entity"
)

type Publisher struct{}

func (Publisher) PublishOrderCreated(_ context.Context, _ *entity.OrderCreatedEvent) error {
	return nil
}

func (Publisher) PublishOrderReceived(_ context.Context, _ *entity.OrderReceivedEvent) error {
	return nil
}
