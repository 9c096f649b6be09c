package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned by Validate for an Order that was
	// not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderHasNoItems is the invariant "at least one item at all times".
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("Order must have at least one item")
)

// Order is the aggregate root of a customer order. It owns its line items,
// derives its total from them, and enforces the status lifecycle described
// on Status.
//
// Order follows these invariants:
//   - It belongs to exactly one customer and is never visible to others
//   - It has at least one item
//   - totalAmount always equals the sum of price × quantity over its items
//   - Entering CANCELLED sets the payment status to REFUNDED
//   - DELIVERED and CANCELLED accept no further status change
type Order struct {
	id              kernel.UUID
	customerID      string
	items           []Item
	totalAmount     kernel.Money
	status          Status
	shippingAddress kernel.Address
	paymentMethod   PaymentMethod
	paymentStatus   PaymentStatus
	trackingNumber  *string
	createdAt       time.Time
	updatedAt       time.Time

	events        []DomainEvent
	isConstructed bool
}

// NewOrder creates a PENDING order with a PENDING payment and records an
// OrderCreated event. Every invalid argument is reported, joined with
// errors.Join.
//
// Example:
//
//	item, _ := order.NewItem("sku-1", "Mug", 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), "cust-42", []order.Item{item}, address, order.CreditCard)
//	if err != nil {
//	    // errs.IsValidation(err) == true
//	}
func NewOrder(
	id kernel.UUID,
	customerID string,
	items []Item,
	shippingAddress kernel.Address,
	paymentMethod PaymentMethod,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setShippingAddress(shippingAddress),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.record(OrderCreated{
		OrderID:       o.id,
		CustomerID:    o.customerID,
		TotalAmount:   o.totalAmount,
		ItemCount:     len(o.items),
		PaymentMethod: o.paymentMethod,
		At:            time.Now().UTC(),
	})

	return o, nil
}

// Snapshot is the persisted state of an order, as read back by a repository.
// It carries no total: RestoreOrder always derives it from Items.
type Snapshot struct {
	ID              kernel.UUID
	CustomerID      string
	Items           []Item
	ShippingAddress kernel.Address
	PaymentMethod   PaymentMethod
	Status          Status
	PaymentStatus   PaymentStatus
	TrackingNumber  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreOrder rebuilds an aggregate from storage. All fields are validated
// again and no event is recorded.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		isConstructed: true,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setItems(s.Items),
		o.setShippingAddress(s.ShippingAddress),
		o.setPaymentMethod(s.PaymentMethod),
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = s.Status
	o.paymentStatus = s.PaymentStatus
	if s.TrackingNumber != nil {
		tn := *s.TrackingNumber
		o.trackingNumber = &tn
	}

	return o, nil
}

// Validate rejects nil and zero-value orders.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() string {
	return o.customerID
}

// Items returns a copy of the line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) ShippingAddress() kernel.Address {
	return o.shippingAddress
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// TrackingNumber returns nil until a carrier number is known.
func (o *Order) TrackingNumber() *string {
	if o.trackingNumber == nil {
		return nil
	}
	tn := *o.trackingNumber
	return &tn
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// BelongsTo reports whether customerID owns the order.
func (o *Order) BelongsTo(customerID string) bool {
	return o.customerID == customerID
}

// SetTimestamps is called by the store after it has written the order.
func (o *Order) SetTimestamps(createdAt, updatedAt time.Time) {
	o.createdAt = createdAt
	o.updatedAt = updatedAt
}

// UpdateStatus applies a generic status change.
//
// Returns:
//   - a validation error when newStatus is Unknown or PENDING
//   - "Cannot update a cancelled order" when the order is CANCELLED
//   - "Cannot update a delivered order" when the order is DELIVERED,
//     also when newStatus is CANCELLED
//
// Moving to CANCELLED also sets the payment status to REFUNDED.
func (o *Order) UpdateStatus(newStatus Status) error {
	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	o.moveTo(next)
	return nil
}

// Cancel moves the order to CANCELLED and refunds the payment.
//
// Returns:
//   - "Order is already cancelled" when the order is CANCELLED
//   - "Cannot cancel a delivered order" when the order is DELIVERED
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.moveTo(next)
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	events := make([]DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) moveTo(next Status) {
	from := o.status
	now := time.Now().UTC()

	o.status = next
	if next == Cancelled {
		o.paymentStatus = PaymentRefunded
	}

	o.record(OrderStatusChanged{
		OrderID:       o.id,
		CustomerID:    o.customerID,
		From:          from,
		To:            next,
		PaymentStatus: o.paymentStatus,
		At:            now,
	})
	if next == Cancelled {
		o.record(OrderCancelled{
			OrderID:     o.id,
			CustomerID:  o.customerID,
			From:        from,
			TotalAmount: o.totalAmount,
			At:          now,
		})
	}
}

func (o *Order) record(event DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for i, item := range items {
		if item.isZero() {
			return errs.NewValueIsRequiredErrorWithCause(
				fmt.Sprintf("items[%d]", i),
				errors.New("item must be created via NewItem"),
			)
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.recalculateTotal()
	return nil
}

func (o *Order) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

// recalculateTotal keeps totalAmount in step with items.
func (o *Order) recalculateTotal() {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	o.totalAmount = total
}
