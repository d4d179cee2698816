package commands

import (
	"errors"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderDraftCommandIsNotConstructed = errors.New(
	"CreateOrderDraftCommand must be created via NewCreateOrderDraftCommand constructor",
)

// CreateOrderDraftCommand asks for a priced preview of a basket. It has no
// side effects and is never deduplicated.
type CreateOrderDraftCommand struct { //nolint:recvcheck //using for validation
	buyerID string
	items   []order.Item

	guard guard.ConstructorGuard
}

func NewCreateOrderDraftCommand(buyerID string, items []OrderItem) (CreateOrderDraftCommand, error) {
	cmd := CreateOrderDraftCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderDraftCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderDraftCommand) Type() CommandType {
	return CreateOrderDraft
}

func (c CreateOrderDraftCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderDraftCommandIsNotConstructed)
}

func (c CreateOrderDraftCommand) BuyerID() string {
	return c.buyerID
}

func (c CreateOrderDraftCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c CreateOrderDraftCommand) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("buyerId", c.buyerID),
		slog.Int("items", len(c.items)),
	)
}

func (c *CreateOrderDraftCommand) setBuyerID(buyerID string) error {
	if buyerID == "" {
		return errs.NewValueIsRequiredError("buyerId")
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderDraftCommand) setItems(items []OrderItem) error {
	domainItems, err := toDomainItems(items)
	if err != nil {
		return err
	}

	c.items = domainItems
	return nil
}
