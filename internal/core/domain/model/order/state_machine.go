package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel behind every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError reports a trigger that the current status does not accept.
// The order is left unchanged.
type InvalidTransitionError struct {
	From    Status
	Trigger Trigger
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s is not allowed from %s", ErrInvalidTransition, e.Trigger, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Transition is the outcome of firing a trigger against a status.
type Transition struct {
	From    Status
	To      Status
	Trigger Trigger

	// Event is the domain event to publish; EventNone for no-ops.
	Event EventKind

	// Reason is set for transitions into Cancelled.
	Reason CancelReason

	// NoOp marks a duplicate trigger: the order already sits in the trigger's target status.
	NoOp bool
}

// Emits reports whether the transition produces a domain event.
func (t Transition) Emits() bool {
	return !t.NoOp && t.Event != EventNone
}

type edge struct {
	from    Status
	trigger Trigger
}

type outcome struct {
	to     Status
	event  EventKind
	reason CancelReason
}

var transitionTable = buildTransitionTable()

func buildTransitionTable() map[edge]outcome {
	table := map[edge]outcome{
		{Draft, TriggerSubmit}:                       {Pending, EventOrderStarted, ReasonNone},
		{Pending, TriggerAwaitValidation}:            {AwaitingValidation, EventOrderAwaitingValidation, ReasonNone},
		{Pending, TriggerStockConfirmed}:             {StockConfirmed, EventOrderStockConfirmed, ReasonNone},
		{AwaitingValidation, TriggerStockConfirmed}:  {StockConfirmed, EventOrderStockConfirmed, ReasonNone},
		{Pending, TriggerStockRejected}:              {Cancelled, EventOrderCancelled, ReasonNoStock},
		{AwaitingValidation, TriggerStockRejected}:   {Cancelled, EventOrderCancelled, ReasonNoStock},
		{StockConfirmed, TriggerPaymentConfirmed}:    {Paid, EventOrderPaid, ReasonNone},
		{StockConfirmed, TriggerPaymentFailed}:       {Cancelled, EventOrderCancelled, ReasonPaymentFailed},
		{Paid, TriggerShip}:                          {Shipped, EventOrderShipped, ReasonNone},
	}

	for _, status := range Statuses() {
		if status.IsTerminal() {
			continue
		}
		table[edge{status, TriggerCancelRequested}] = outcome{Cancelled, EventOrderCancelled, ReasonUserRequested}
	}

	return table
}

// Fire resolves what trigger does to an order in status current. It is pure:
// nothing is mutated and the same input always yields the same output.
//
// Returns:
//   - a NoOp Transition when current already equals the trigger's target
//   - the table Transition when the edge exists
//   - *InvalidTransitionError otherwise
func Fire(current Status, trigger Trigger) (Transition, error) {
	if err := errors.Join(current.Validate(), trigger.Validate()); err != nil {
		return Transition{}, err
	}

	if trigger.Target() == current {
		return Transition{From: current, To: current, Trigger: trigger, NoOp: true}, nil
	}

	next, ok := transitionTable[edge{current, trigger}]
	if !ok {
		return Transition{}, &InvalidTransitionError{From: current, Trigger: trigger}
	}

	return Transition{
		From:    current,
		To:      next.to,
		Trigger: trigger,
		Event:   next.event,
		Reason:  next.reason,
	}, nil
}

// CanFire reports whether trigger moves an order out of current.
func CanFire(current Status, trigger Trigger) bool {
	t, err := Fire(current, trigger)
	return err == nil && !t.NoOp
}
