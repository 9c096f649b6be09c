package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// EventPublisher delivers committed domain events to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.DomainEvent) error
}
