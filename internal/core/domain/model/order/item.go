package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Item is one order line. It is a value object: two items with the same
// fields are interchangeable.
type Item struct {
	productID string
	name      string
	quantity  int
	price     kernel.Money
}

// NewItem validates a line item. Quantity must be at least 1; the price is
// already guaranteed non-negative by kernel.Money.
func NewItem(productID, name string, quantity int, price kernel.Money) (Item, error) {
	productID = strings.TrimSpace(productID)
	name = strings.TrimSpace(name)

	var problems []error
	if productID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("productId"))
	}
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if quantity < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is less than 1", quantity),
		))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return Item{
		productID: productID,
		name:      name,
		quantity:  quantity,
		price:     price,
	}, nil
}

func (i Item) ProductID() string { return i.productID }
func (i Item) Name() string { return i.name }
func (i Item) Quantity() int { return i.quantity }
func (i Item) Price() kernel.Money { return i.price }

// Subtotal is price × quantity.
func (i Item) Subtotal() kernel.Money {
	return i.price.Times(i.quantity)
}

func (i Item) isZero() bool {
	return i.productID == "" && i.quantity == 0
}
