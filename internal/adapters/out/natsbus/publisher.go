// Package natsbus publishes committed order events to NATS.
//
// Each event goes to the subject "<prefix>.<event name>", for example
// "orders.created", with a JSON encoded Message as payload.
package natsbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/nats-io/nats.go"
)

const DefaultSubjectPrefix = "orders"

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

type Publisher struct {
	conn   Conn
	prefix string
	logger *slog.Logger
}

func NewPublisher(conn Conn, prefix string, logger *slog.Logger) *Publisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &Publisher{
		conn:   conn,
		prefix: prefix,
		logger: logger.With("component", "nats_publisher"),
	}
}

// Subject returns the subject an event with the given name is published on.
func (p *Publisher) Subject(eventName string) string {
	return p.prefix + "." + eventName
}

// Publish sends every event and returns all failures joined. A failed event
// does not stop the remaining ones. Failures are left for the caller to log.
func (p *Publisher) Publish(ctx context.Context, events ...order.DomainEvent) error {
	var failures []error
	for _, event := range events {
		if err := p.publishOne(event); err != nil {
			failures = append(failures, fmt.Errorf("order %s: %w", event.AggregateID(), err))
			continue
		}
		p.logger.DebugContext(ctx, "Order event published",
			"subject", p.Subject(event.EventName()),
			"order_id", event.AggregateID().String(),
		)
	}
	return errors.Join(failures...)
}

func (p *Publisher) publishOne(event order.DomainEvent) error {
	msg, err := toMessage(event)
	if err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.EventName(), err)
	}
	subject := p.Subject(event.EventName())
	if err = p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

// Connect dials the NATS server with reconnects enabled.
func Connect(url string, logger *slog.Logger) (*nats.Conn, error) {
	log := logger.With("component", "nats")
	nc, err := nats.Connect(url,
		nats.Name("ordering-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats at %s: %w", url, err)
	}
	return nc, nil
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ...order.DomainEvent) error {
	return nil
}
