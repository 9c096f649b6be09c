package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// Event names double as the suffix of the broker subject they are published on.
const (
	EventOrderCreated       = "created"
	EventOrderStatusChanged = "status_changed"
	EventOrderCancelled     = "cancelled"
)

// DomainEvent is a fact recorded by the Order aggregate. Events are held on
// the aggregate until the unit of work that persisted it has committed.
type DomainEvent interface {
	EventName() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

// OrderCreated is recorded by NewOrder.
type OrderCreated struct {
	OrderID       kernel.UUID
	CustomerID    string
	TotalAmount   kernel.Money
	ItemCount     int
	PaymentMethod PaymentMethod
	At            time.Time
}

func (e OrderCreated) EventName() string { return EventOrderCreated }
func (e OrderCreated) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderCreated) OccurredAt() time.Time { return e.At }

// OrderStatusChanged is recorded for every status change, including
// cancellations.
type OrderStatusChanged struct {
	OrderID       kernel.UUID
	CustomerID    string
	From          Status
	To            Status
	PaymentStatus PaymentStatus
	At            time.Time
}

func (e OrderStatusChanged) EventName() string { return EventOrderStatusChanged }
func (e OrderStatusChanged) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderStatusChanged) OccurredAt() time.Time { return e.At }

// OrderCancelled is recorded in addition to OrderStatusChanged whenever an
// order enters CANCELLED, whichever path got it there.
type OrderCancelled struct {
	OrderID     kernel.UUID
	CustomerID  string
	From        Status
	TotalAmount kernel.Money
	At          time.Time
}

func (e OrderCancelled) EventName() string { return EventOrderCancelled }
func (e OrderCancelled) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderCancelled) OccurredAt() time.Time { return e.At }
