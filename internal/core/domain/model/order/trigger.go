package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Trigger is a fact that asks the state machine to move an order.
type Trigger int

const (
	UnknownTrigger Trigger = iota
	TriggerSubmit
	TriggerAwaitValidation
	TriggerStockConfirmed
	TriggerStockRejected
	TriggerPaymentConfirmed
	TriggerPaymentFailed
	TriggerShip
	TriggerCancelRequested
)

var triggerNames = map[Trigger]string{
	TriggerSubmit:           "Submit",
	TriggerAwaitValidation:  "AwaitValidation",
	TriggerStockConfirmed:   "StockConfirmed",
	TriggerStockRejected:    "StockRejected",
	TriggerPaymentConfirmed: "PaymentConfirmed",
	TriggerPaymentFailed:    "PaymentFailed",
	TriggerShip:             "Ship",
	TriggerCancelRequested:  "CancelRequested",
}

// triggerTargets is the status each trigger drives an order to. An order that
// already sits in that status has seen the trigger before.
var triggerTargets = map[Trigger]Status{
	TriggerSubmit:           Pending,
	TriggerAwaitValidation:  AwaitingValidation,
	TriggerStockConfirmed:   StockConfirmed,
	TriggerStockRejected:    Cancelled,
	TriggerPaymentConfirmed: Paid,
	TriggerPaymentFailed:    Cancelled,
	TriggerShip:             Shipped,
	TriggerCancelRequested:  Cancelled,
}

func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return "Unknown"
}

func (t Trigger) Validate() error {
	if _, ok := triggerNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("trigger is invalid", fmt.Errorf("%d is not a valid trigger", t))
	}
	return nil
}

// Target returns the status the trigger leads to, or Unknown for invalid triggers.
func (t Trigger) Target() Status {
	return triggerTargets[t]
}
