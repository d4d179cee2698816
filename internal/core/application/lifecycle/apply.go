package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/application/integration"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// Tx exposes the repositories a transition writes to. It is satisfied by ports.UnitOfWork.
type Tx interface {
	OrderRepository() ports.OrderRepository
	OutboxRepository() ports.OutboxRepository
}

// Outcome describes an applied trigger.
type Outcome struct {
	Order      *order.Order
	Transition order.Transition

	// Event is the staged follow-on event; nil for no-ops.
	Event *integration.Event
}

// Apply locks order orderID, fires trigger and, unless the trigger is a
// duplicate, saves the order and appends the follow-on event to the outbox.
//
// Returns:
//   - *errs.ObjectNotFoundError when the order does not exist
//   - *order.InvalidTransitionError when the trigger is not accepted
//   - any storage error as is
func Apply(ctx context.Context, tx Tx, now time.Time, orderID int64, trigger order.Trigger) (Outcome, error) {
	o, err := tx.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return Outcome{}, err
	}

	transition, err := o.Apply(trigger, now)
	if err != nil {
		return Outcome{Order: o}, err
	}
	if transition.NoOp {
		return Outcome{Order: o, Transition: transition}, nil
	}

	if err = tx.OrderRepository().Update(ctx, o); err != nil {
		return Outcome{}, fmt.Errorf("failed to update order %d: %w", orderID, err)
	}

	event, err := Stage(ctx, tx, o, transition, now)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{Order: o, Transition: transition, Event: event}, nil
}

// Stage appends the integration event of transition to the outbox. It returns
// nil when the transition emits nothing.
func Stage(ctx context.Context, tx Tx, o *order.Order, t order.Transition, now time.Time) (*integration.Event, error) {
	event, ok, err := integration.FromTransition(o, t, now)
	if err != nil || !ok {
		return nil, err
	}
	if err = tx.OutboxRepository().Add(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to stage %s for order %d: %w", event.Topic, o.ID(), err)
	}
	return &event, nil
}

// IsRejection reports whether err is a deterministic business outcome (unknown
// order, transition not allowed) rather than a storage failure. Rejections
// are recorded and never retried.
func IsRejection(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, order.ErrInvalidTransition)
}
