package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

// ShipOrderCommand marks a paid order as shipped.
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

func NewShipOrderCommand(orderID int64) (ShipOrderCommand, error) {
	cmd := ShipOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ShipOrderCommand{}, err
	}

	return cmd, nil
}

func (c ShipOrderCommand) Type() CommandType {
	return ShipOrder
}

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

func (c ShipOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c ShipOrderCommand) LogValue() slog.Value {
	return slog.GroupValue(slog.Int64("orderNumber", c.orderID))
}

func (c *ShipOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderNumber", fmt.Errorf("%d is not greater than 0", orderID))
	}

	c.orderID = orderID
	return nil
}
