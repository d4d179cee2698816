package commands

import (
	"context"

	"ordering/internal/core/application/lifecycle"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/clock"
)

// applyTrigger moves an existing order. Unknown orders and refused transitions
// become Rejected results; only storage errors are returned.
func applyTrigger(
	ctx context.Context,
	tx OrderTx,
	clk clock.Clock,
	commandType CommandType,
	orderID int64,
	trigger order.Trigger,
) (CommandResult, error) {
	outcome, err := lifecycle.Apply(ctx, tx, clk.Now(), orderID, trigger)
	if lifecycle.IsRejection(err) {
		return Rejected(commandType, err.Error()), nil
	}
	if err != nil {
		return CommandResult{}, err
	}

	return Completed(commandType, outcome.Order), nil
}
