package telemetry

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// FanOutPublisher hands every batch of events to each of its publishers in
// order. All publishers run even if one fails; failures are joined.
type FanOutPublisher struct {
	publishers []ports.EventPublisher
}

func NewFanOutPublisher(publishers ...ports.EventPublisher) *FanOutPublisher {
	return &FanOutPublisher{publishers: publishers}
}

func (f *FanOutPublisher) Publish(ctx context.Context, events ...order.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	var failures []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, events...); err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}
