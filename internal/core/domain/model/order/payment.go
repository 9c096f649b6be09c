package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// PaymentMethod is chosen at creation and never changes.
type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	CreditCard
	DebitCard
	PayPal
	BankTransfer
)

var paymentMethodNames = map[PaymentMethod]string{
	CreditCard:   "CREDIT_CARD",
	DebitCard:    "DEBIT_CARD",
	PayPal:       "PAYPAL",
	BankTransfer: "BANK_TRANSFER",
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for method, n := range paymentMethodNames {
		if n == name {
			return method, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod is invalid",
		fmt.Errorf("%q is not a supported payment method", s),
	)
}

func (m PaymentMethod) Validate() error {
	if _, ok := paymentMethodNames[m]; !ok {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	return nil
}

func (m PaymentMethod) String() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

// PaymentStatus tracks the payment side of an order. Only cancellation
// changes it inside this service.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	PaymentPending
	PaymentCompleted
	PaymentFailed
	PaymentRefunded
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending:   "PENDING",
	PaymentCompleted: "COMPLETED",
	PaymentFailed:    "FAILED",
	PaymentRefunded:  "REFUNDED",
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, n := range paymentStatusNames {
		if n == name {
			return status, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus is invalid",
		fmt.Errorf("%q is not a known payment status", s),
	)
}

func (p PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus is invalid", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

func (p PaymentStatus) String() string {
	if name, ok := paymentStatusNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}
