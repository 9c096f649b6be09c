package kernel

import (
	"errors"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned for zero-value addresses.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is a shipping destination. All five parts are required.
type Address struct {
	street  string
	city    string
	state   string
	country string
	zipCode string

	guard guard.ConstructorGuard
}

// NewAddress trims every part and reports each missing one.
func NewAddress(street, city, state, country, zipCode string) (Address, error) {
	address := Address{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		required(&address.street, "shippingAddress.street", street),
		required(&address.city, "shippingAddress.city", city),
		required(&address.state, "shippingAddress.state", state),
		required(&address.country, "shippingAddress.country", country),
		required(&address.zipCode, "shippingAddress.zipCode", zipCode),
	); err != nil {
		return Address{}, err
	}

	return address, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string { return a.street }
func (a Address) City() string { return a.city }
func (a Address) State() string { return a.state }
func (a Address) Country() string { return a.country }
func (a Address) ZipCode() string { return a.zipCode }

func required(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}
