package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Draft ─Submit─> Pending ─AwaitValidation─> AwaitingValidation
//	                   │                              │
//	                   └───────StockConfirmed─────────┤
//	                                                  v
//	            StockConfirmed ─PaymentConfirmed─> Paid ─Ship─> Shipped
//
//	Pending, AwaitingValidation ─StockRejected─> Cancelled
//	StockConfirmed ─PaymentFailed─> Cancelled
//	any non-terminal status ─CancelRequested─> Cancelled
//
// Shipped and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is an order that has been assembled but not submitted yet.
	Draft

	// Pending is a submitted order inside its grace period.
	Pending

	// AwaitingValidation is an order whose grace period elapsed and that waits for stock validation.
	AwaitingValidation

	// StockConfirmed is an order whose items are all in stock; it waits for payment.
	StockConfirmed

	// Paid is an order whose payment was confirmed; it can be shipped.
	Paid

	// Shipped is a terminal status.
	Shipped

	// Cancelled is the absorbing terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Draft:              "Draft",
		Pending:            "Pending",
		AwaitingValidation: "AwaitingValidation",
		StockConfirmed:     "StockConfirmed",
		Paid:               "Paid",
		Shipped:            "Shipped",
		Cancelled:          "Cancelled",
	}
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Draft, Pending, AwaitingValidation, StockConfirmed, Paid, Shipped, Cancelled}
}

// Validate checks if the Status value is one of the declared statuses.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Shipped || s == Cancelled
}

// ParseStatus maps a status name back to its value.
func ParseStatus(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == name && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}
