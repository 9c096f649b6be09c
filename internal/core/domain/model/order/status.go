package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	PENDING ──> PROCESSING ──> SHIPPED ──> DELIVERED
//	   │             │            │
//	   └─────────────┴────────────┴──────> CANCELLED
//
// DELIVERED and CANCELLED are terminal. Among the non-terminal states the
// lifecycle allows skips and sideways moves (PENDING -> SHIPPED,
// SHIPPED -> PROCESSING); PENDING itself is never a valid target.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	Pending
	Processing
	Shipped
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	Processing: "PROCESSING",
	Shipped:    "SHIPPED",
	Delivered:  "DELIVERED",
	Cancelled:  "CANCELLED",
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Processing, Shipped, Delivered, Cancelled}
}

// ParseStatus converts the persisted or transported name of a status.
// Matching ignores case and surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known status", s),
	)
}

// Validate returns an error for Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case name, or "UNKNOWN".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// TransitionTo checks a generic status update from s to target and returns
// the resulting status.
//
// Returns:
//   - a validation error if target is Unknown
//   - an errs.InvalidTransitionError if s is terminal, whatever the target
//   - a validation error if target is Pending
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if err := s.Validate(); err != nil {
		return Unknown, err
	}

	switch s {
	case Cancelled:
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String(), "Cannot update a cancelled order")
	case Delivered:
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String(), "Cannot update a delivered order")
	}

	if target == Pending {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid target status", target),
		)
	}

	return target, nil
}

// Cancel checks the dedicated cancellation path from s.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}

	switch s {
	case Cancelled:
		return Unknown, errs.NewInvalidTransitionError(s.String(), Cancelled.String(), "Order is already cancelled")
	case Delivered:
		return Unknown, errs.NewInvalidTransitionError(s.String(), Cancelled.String(), "Cannot cancel a delivered order")
	}

	return Cancelled, nil
}
