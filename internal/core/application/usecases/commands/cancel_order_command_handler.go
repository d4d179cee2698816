package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/clock"
)

// CancelOrderCommandHandler cancels an order on behalf of its buyer.
// Cancelling an order that is already cancelled succeeds without emitting anything.
type CancelOrderCommandHandler struct {
	clock clock.Clock
}

func NewCancelOrderCommandHandler(clk clock.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		clock: clk,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, tx OrderTx, cmd CancelOrderCommand) (CommandResult, error) {
	if err := cmd.Validate(); err != nil {
		return CommandResult{}, err
	}

	return applyTrigger(ctx, tx, h.clock, CancelOrder, cmd.OrderID(), order.TriggerCancelRequested)
}
