package commands_test

import (
	"bytes"
	"log/slog"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("should mask the card number", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(checkout())

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, commands.CreateOrder, cmd.Type())
		assert.Equal(t, "XXXXXXXXXXXX1111", cmd.PaymentMethod().MaskedCardNumber())
		assert.Equal(t, "user-1", cmd.Buyer().UserID())
		assert.Equal(t, "Seattle", cmd.Address().City())
		require.Len(t, cmd.Items(), 1)
	})

	t.Run("should never log the raw card number", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(checkout())
		require.NoError(t, err)

		var buf bytes.Buffer
		slog.New(slog.NewJSONHandler(&buf, nil)).Info("Sending command", "command", cmd)

		assert.Contains(t, buf.String(), "XXXXXXXXXXXX1111")
		assert.NotContains(t, buf.String(), "4111111111111111")
	})

	t.Run("should reject a short card number without echoing it", func(t *testing.T) {
		in := checkout()
		in.CardNumber = "411"

		_, err := commands.NewCreateOrderCommand(in)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.NotContains(t, err.Error(), "411")
		assert.Contains(t, err.Error(), "cardNumber")
	})

	t.Run("should report every invalid part", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(commands.CreateOrderInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "userID")
		assert.Contains(t, err.Error(), "street")
		assert.Contains(t, err.Error(), "cardNumber")
		assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("should report the position of an invalid item", func(t *testing.T) {
		in := checkout()
		in.Items = append(in.Items, commands.OrderItem{ProductID: 2, ProductName: "B", UnitPrice: decimal.NewFromInt(1), Units: 0})

		_, err := commands.NewCreateOrderCommand(in)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "item 1")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

func TestNewOrderNumberCommands(t *testing.T) {
	cancel, err := commands.NewCancelOrderCommand(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cancel.OrderID())
	assert.Equal(t, commands.CancelOrder, cancel.Type())

	ship, err := commands.NewShipOrderCommand(7)
	require.NoError(t, err)
	assert.Equal(t, commands.ShipOrder, ship.Type())

	_, err = commands.NewCancelOrderCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = commands.NewShipOrderCommand(-1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.ErrorIs(t, commands.CancelOrderCommand{}.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
	require.ErrorIs(t, commands.ShipOrderCommand{}.Validate(), commands.ErrShipOrderCommandIsNotConstructed)
}

func TestNewCreateOrderDraftCommand(t *testing.T) {
	cmd, err := commands.NewCreateOrderDraftCommand("user-1", checkout().Items)
	require.NoError(t, err)
	assert.Equal(t, commands.CreateOrderDraft, cmd.Type())

	_, err = commands.NewCreateOrderDraftCommand("", nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
}
