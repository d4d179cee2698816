package commands

import (
	"context"

	"ordering/internal/core/application/lifecycle"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/clock"
)

// ConfirmGracePeriodCommandHandler fires AwaitValidation on orders past their
// grace period. Each order moves in its own transaction under a row lock, so
// an order that changed meanwhile (stock confirmed, cancelled) is skipped.
type ConfirmGracePeriodCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewConfirmGracePeriodCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) ConfirmGracePeriodCommandHandler {
	return ConfirmGracePeriodCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle returns how many orders were moved.
func (h *ConfirmGracePeriodCommandHandler) Handle(ctx context.Context, cmd ConfirmGracePeriodCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()
	candidates, err := h.uowFactory.Create().OrderRepository().
		GetPendingSubmittedBefore(ctx, now.Add(-cmd.GracePeriod()), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, candidate := range candidates {
		changed, err := h.confirm(ctx, candidate.ID())
		if err != nil {
			return moved, err
		}
		if changed {
			moved++
		}
	}

	return moved, nil
}

func (h *ConfirmGracePeriodCommandHandler) confirm(ctx context.Context, orderID int64) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outcome, err := lifecycle.Apply(ctx, uow, h.clock.Now(), orderID, order.TriggerAwaitValidation)
	if lifecycle.IsRejection(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if outcome.Transition.NoOp {
		return false, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
