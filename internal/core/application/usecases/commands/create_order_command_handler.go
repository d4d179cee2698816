package commands

import (
	"context"
	"fmt"

	"ordering/internal/core/application/lifecycle"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/clock"
)

// CreateOrderCommandHandler places an order: it builds the Draft, submits it
// to Pending and stages OrderStarted in the outbox.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(clock.NewSystem())
//	result, err := handler.Handle(ctx, tx, cmd)
//	// result.OrderID is the new order, result.Status is "Pending"
type CreateOrderCommandHandler struct {
	clock clock.Clock
}

func NewCreateOrderCommandHandler(clk clock.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		clock: clk,
	}
}

// Handle creates and submits the order inside tx.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, tx OrderTx, cmd CreateOrderCommand) (CommandResult, error) {
	if err := cmd.Validate(); err != nil {
		return CommandResult{}, err
	}

	now := h.clock.Now()
	o, err := order.NewOrder(cmd.Buyer(), cmd.Address(), cmd.PaymentMethod(), cmd.Items(), now)
	if err != nil {
		return Rejected(CreateOrder, err.Error()), nil
	}

	transition, err := o.Apply(order.TriggerSubmit, now)
	if err != nil {
		return CommandResult{}, err
	}

	if err = tx.OrderRepository().Add(ctx, o); err != nil {
		return CommandResult{}, fmt.Errorf("failed to add order: %w", err)
	}

	if _, err = lifecycle.Stage(ctx, tx, o, transition, now); err != nil {
		return CommandResult{}, err
	}

	return Completed(CreateOrder, o), nil
}
