package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one requested order line, before validation.
type OrderItemInput struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

// ShippingAddressInput is the requested destination, before validation.
type ShippingAddressInput struct {
	Street  string
	City    string
	State   string
	Country string
	ZipCode string
}

// CreateOrderCommand represents a customer placing a new order. The total is
// never part of the command; it is derived from the items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("cust-42",
//	    []OrderItemInput{{ProductID: "sku-1", Name: "Mug", Quantity: 2, Price: decimal.RequireFromString("29.99")}},
//	    ShippingAddressInput{Street: "1 Main St", City: "Springfield", State: "IL", Country: "US", ZipCode: "62701"},
//	    "CREDIT_CARD",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd) // created.TotalAmount() == 59.98
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID      string
	items           []order.Item
	shippingAddress kernel.Address
	paymentMethod   order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request payload into domain values.
// All problems are reported together.
func NewCreateOrderCommand(
	customerID string,
	items []OrderItemInput,
	shippingAddress ShippingAddressInput,
	paymentMethod string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setShippingAddress(shippingAddress),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// Items returns a copy of the validated items.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c CreateOrderCommand) ShippingAddress() kernel.Address {
	return c.shippingAddress
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(inputs []OrderItemInput) error {
	if len(inputs) == 0 {
		return order.ErrOrderHasNoItems
	}

	items := make([]order.Item, 0, len(inputs))
	var problems []error
	for i, in := range inputs {
		price, err := kernel.NewMoney(in.Price)
		if err != nil {
			problems = append(problems, fmt.Errorf("items[%d].price: %w", i, err))
			continue
		}

		item, err := order.NewItem(in.ProductID, in.Name, in.Quantity, price)
		if err != nil {
			problems = append(problems, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(in ShippingAddressInput) error {
	address, err := kernel.NewAddress(in.Street, in.City, in.State, in.Country, in.ZipCode)
	if err != nil {
		return err
	}

	c.shippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}

	method, err := order.ParsePaymentMethod(paymentMethod)
	if err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
