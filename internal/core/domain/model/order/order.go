package order

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIDIsAlreadyAssigned is returned when AssignID is called twice.
	ErrOrderIDIsAlreadyAssigned = errors.New("order id is already assigned")
)

// Order represents a customer order. It is the aggregate root that manages
// the order lifecycle from Draft until Shipped or Cancelled.
//
// Order follows these invariants:
//   - Must have a buyer, a shipping address, a masked payment method and at least one item
//   - Items never change after creation
//   - Status changes only through Apply, which delegates to Fire
//   - Every status entered is stamped with the time it was entered
//   - The identifier is assigned once, by the store, when the order is first persisted
type Order struct {
	// id is the server-assigned identifier (0 until persisted)
	id int64

	buyer   Buyer
	address kernel.Address
	payment PaymentMethod
	items   []Item

	// status represents the current state in the order lifecycle
	status Status

	// transitions records when each status was entered
	transitions map[Status]time.Time

	// description explains the last transition
	description string

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an Order in Draft status. Callers submit it with
// Apply(TriggerSubmit, now) to move it to Pending.
//
// Example:
//
//	o, err := order.NewOrder(buyer, address, payment, items, clk.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//	transition, err := o.Apply(order.TriggerSubmit, clk.Now())
//	// transition.Event == order.EventOrderStarted
func NewOrder(
	buyer Buyer,
	address kernel.Address,
	payment PaymentMethod,
	items []Item,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		buyer.Validate(),
		address.Validate(),
		payment.Validate(),
		validateItems(items),
	); err != nil {
		return nil, err
	}

	return &Order{
		buyer:         buyer,
		address:       address,
		payment:       payment,
		items:         append([]Item(nil), items...),
		status:        Draft,
		transitions:   map[Status]time.Time{Draft: now.UTC()},
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an Order read from storage. It validates the same
// invariants as NewOrder plus the persisted status and identifier.
func RestoreOrder(
	id int64,
	buyer Buyer,
	address kernel.Address,
	payment PaymentMethod,
	items []Item,
	status Status,
	transitions map[Status]time.Time,
	description string,
) (*Order, error) {
	var idErr error
	if id <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}

	if err := errors.Join(
		idErr,
		buyer.Validate(),
		address.Validate(),
		payment.Validate(),
		validateItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	restored := make(map[Status]time.Time, len(transitions))
	for s, at := range transitions {
		restored[s] = at.UTC()
	}

	return &Order{
		id:            id,
		buyer:         buyer,
		address:       address,
		payment:       payment,
		items:         append([]Item(nil), items...),
		status:        status,
		transitions:   restored,
		description:   description,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignID stores the identifier generated by the store on first insert.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrOrderIDIsAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

// ID returns the order's identifier, 0 while unsaved.
func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) Buyer() Buyer {
	return o.buyer
}

func (o *Order) Address() kernel.Address {
	return o.address
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.payment
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Description() string {
	return o.description
}

// Total is the sum of all line totals.
func (o *Order) Total() decimal.Decimal {
	return totalOf(o.items)
}

// CreatedAt is the moment the order entered Draft.
func (o *Order) CreatedAt() time.Time {
	return o.transitions[Draft]
}

// TransitionedAt returns when the order entered status, if it ever did.
func (o *Order) TransitionedAt(status Status) (time.Time, bool) {
	at, ok := o.transitions[status]
	return at, ok
}

// Transitions returns a copy of every status entered with its timestamp.
func (o *Order) Transitions() map[Status]time.Time {
	out := make(map[Status]time.Time, len(o.transitions))
	for s, at := range o.transitions {
		out[s] = at
	}
	return out
}

// Apply fires trigger against the current status and, unless the result is a
// no-op, moves the order to the next status stamped with now.
//
// Returns:
//   - the Transition describing what happened (NoOp for duplicates)
//   - *InvalidTransitionError if the trigger is not accepted; the order is unchanged
func (o *Order) Apply(trigger Trigger, now time.Time) (Transition, error) {
	if err := o.Validate(); err != nil {
		return Transition{}, err
	}

	transition, err := Fire(o.status, trigger)
	if err != nil {
		return Transition{}, err
	}
	if transition.NoOp {
		return transition, nil
	}

	o.status = transition.To
	o.transitions[transition.To] = now.UTC()
	o.description = describe(transition)

	return transition, nil
}

func describe(t Transition) string {
	switch {
	case t.Reason != ReasonNone:
		return fmt.Sprintf("%s: %s", t.To, t.Reason)
	default:
		return fmt.Sprintf("%s after %s", t.To, t.Trigger)
	}
}
