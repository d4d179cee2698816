package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/clock"
)

// ShipOrderCommandHandler ships a paid order.
type ShipOrderCommandHandler struct {
	clock clock.Clock
}

func NewShipOrderCommandHandler(clk clock.Clock) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		clock: clk,
	}
}

func (h *ShipOrderCommandHandler) Handle(ctx context.Context, tx OrderTx, cmd ShipOrderCommand) (CommandResult, error) {
	if err := cmd.Validate(); err != nil {
		return CommandResult{}, err
	}

	return applyTrigger(ctx, tx, h.clock, ShipOrder, cmd.OrderID(), order.TriggerShip)
}
