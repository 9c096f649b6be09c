package natsbus

import (
	"fmt"
	"time"

	"ordering/internal/core/domain/model/order"
)

// Message is the JSON body published for every order event.
type Message struct {
	Event         string    `json:"event"`
	OrderID       string    `json:"orderId"`
	CustomerID    string    `json:"customerId"`
	OccurredAt    time.Time `json:"occurredAt"`
	Status        string    `json:"status,omitempty"`
	PreviousState string    `json:"previousStatus,omitempty"`
	PaymentStatus string    `json:"paymentStatus,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	TotalAmount   string    `json:"totalAmount,omitempty"`
	ItemCount     int       `json:"itemCount,omitempty"`
}

func toMessage(event order.DomainEvent) (Message, error) {
	msg := Message{
		Event:      event.EventName(),
		OrderID:    event.AggregateID().String(),
		OccurredAt: event.OccurredAt().UTC(),
	}

	switch e := event.(type) {
	case order.OrderCreated:
		msg.CustomerID = e.CustomerID
		msg.Status = order.Pending.String()
		msg.PaymentStatus = order.PaymentPending.String()
		msg.PaymentMethod = e.PaymentMethod.String()
		msg.TotalAmount = e.TotalAmount.String()
		msg.ItemCount = e.ItemCount
	case order.OrderStatusChanged:
		msg.CustomerID = e.CustomerID
		msg.Status = e.To.String()
		msg.PreviousState = e.From.String()
		msg.PaymentStatus = e.PaymentStatus.String()
	case order.OrderCancelled:
		msg.CustomerID = e.CustomerID
		msg.Status = order.Cancelled.String()
		msg.PreviousState = e.From.String()
		msg.PaymentStatus = order.PaymentRefunded.String()
		msg.TotalAmount = e.TotalAmount.String()
	default:
		return Message{}, fmt.Errorf("unsupported event %T", event)
	}

	return msg, nil
}
