package reactor

import (
	"context"
	"encoding/json"
	"fmt"

	"ordering/internal/core/application/integration"
	"ordering/internal/core/application/lifecycle"
	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/clock"
)

// Handler reacts to one inbound topic inside the deduplication transaction.
//
// A failed Result is a recorded rejection. A returned error means nothing was
// recorded and the event must be redelivered.
type Handler interface {
	Handle(ctx context.Context, tx lifecycle.Tx, event integration.Event) (idempotency.Result, error)
}

// Outcome is the payload recorded for a handled event.
type Outcome struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
	NoOp    bool   `json:"noop,omitempty"`
}

// TransitionHandler fires a fixed trigger on the order the event refers to.
type TransitionHandler struct {
	trigger order.Trigger
	clock   clock.Clock
}

func NewTransitionHandler(trigger order.Trigger, clk clock.Clock) TransitionHandler {
	return TransitionHandler{
		trigger: trigger,
		clock:   clk,
	}
}

func (h *TransitionHandler) Trigger() order.Trigger {
	return h.trigger
}

func (h *TransitionHandler) Handle(
	ctx context.Context,
	tx lifecycle.Tx,
	event integration.Event,
) (idempotency.Result, error) {
	outcome, err := lifecycle.Apply(ctx, tx, h.clock.Now(), event.OrderID, h.trigger)
	if lifecycle.IsRejection(err) {
		return idempotency.Failure(err.Error()), nil
	}
	if err != nil {
		return idempotency.Result{}, err
	}

	payload, err := json.Marshal(Outcome{
		OrderID: outcome.Order.ID(),
		Status:  outcome.Order.Status().String(),
		NoOp:    outcome.Transition.NoOp,
	})
	if err != nil {
		return idempotency.Result{}, fmt.Errorf("failed to encode outcome of %s: %w", event.Topic, err)
	}
	return idempotency.Success(payload), nil
}

// Handlers is the dispatch table of every inbound topic.
func Handlers(clk clock.Clock) map[string]Handler {
	stockConfirmed := NewTransitionHandler(order.TriggerStockConfirmed, clk)
	stockRejected := NewTransitionHandler(order.TriggerStockRejected, clk)
	paymentSucceeded := NewTransitionHandler(order.TriggerPaymentConfirmed, clk)
	paymentFailed := NewTransitionHandler(order.TriggerPaymentFailed, clk)

	return map[string]Handler{
		integration.TopicStockConfirmed:   &stockConfirmed,
		integration.TopicStockRejected:    &stockRejected,
		integration.TopicPaymentSucceeded: &paymentSucceeded,
		integration.TopicPaymentFailed:    &paymentFailed,
	}
}
