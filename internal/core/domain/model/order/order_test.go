package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	buyer, err := order.NewBuyer("user-1", "Alice")
	require.NoError(t, err)
	address, err := kernel.NewAddress("1 Main St", "Seattle", "WA", "USA", "98101")
	require.NoError(t, err)
	masked, err := kernel.MaskCardNumber("4111111111111111")
	require.NoError(t, err)
	payment, err := order.NewPaymentMethod(2, "Alice", masked, createdAt.AddDate(2, 0, 0))
	require.NoError(t, err)
	item, err := order.NewItem(1, "A", decimal.RequireFromString("9.50"), 2)
	require.NoError(t, err)

	o, err := order.NewOrder(buyer, address, payment, []order.Item{item}, createdAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a draft order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, int64(0), o.ID())
		assert.Equal(t, order.Draft, o.Status())
		assert.Equal(t, "user-1", o.Buyer().UserID())
		assert.Equal(t, "XXXXXXXXXXXX1111", o.PaymentMethod().MaskedCardNumber())
		assert.Equal(t, "Seattle", o.Address().City())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.True(t, decimal.RequireFromString("19").Equal(o.Total()))
		require.Len(t, o.Items(), 1)
	})

	t.Run("should report every invalid part", func(t *testing.T) {
		o, err := order.NewOrder(order.Buyer{}, kernel.Address{}, order.PaymentMethod{}, nil, createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrBuyerIsNotConstructed)
		assert.ErrorIs(t, err, kernel.ErrAddressIsNotConstructed)
		assert.ErrorIs(t, err, order.ErrPaymentMethodIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should not share the items slice with the caller", func(t *testing.T) {
		o := newTestOrder(t)

		items := o.Items()
		items[0] = order.Item{}

		require.NoError(t, o.Items()[0].Validate())
	})
}

func TestOrder_Apply(t *testing.T) {
	t.Run("should submit a draft and stamp the transition", func(t *testing.T) {
		o := newTestOrder(t)
		submittedAt := createdAt.Add(time.Minute)

		transition, err := o.Apply(order.TriggerSubmit, submittedAt)

		require.NoError(t, err)
		assert.Equal(t, order.EventOrderStarted, transition.Event)
		assert.Equal(t, order.Pending, o.Status())
		at, ok := o.TransitionedAt(order.Pending)
		assert.True(t, ok)
		assert.Equal(t, submittedAt, at)
		assert.Equal(t, "Pending after Submit", o.Description())
	})

	t.Run("should leave the order unchanged on an invalid transition", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Apply(order.TriggerSubmit, createdAt)
		require.NoError(t, err)

		_, err = o.Apply(order.TriggerPaymentConfirmed, createdAt.Add(time.Hour))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		_, ok := o.TransitionedAt(order.Paid)
		assert.False(t, ok)
	})

	t.Run("should cancel on payment failure and ignore a late payment confirmation", func(t *testing.T) {
		o := newTestOrder(t)
		for _, trigger := range []order.Trigger{order.TriggerSubmit, order.TriggerStockConfirmed} {
			_, err := o.Apply(trigger, createdAt)
			require.NoError(t, err)
		}

		transition, err := o.Apply(order.TriggerPaymentFailed, createdAt)
		require.NoError(t, err)
		assert.Equal(t, order.EventOrderCancelled, transition.Event)
		assert.Equal(t, order.ReasonPaymentFailed, transition.Reason)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "Cancelled: PaymentFailed", o.Description())

		_, err = o.Apply(order.TriggerPaymentConfirmed, createdAt)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should keep the first timestamp for a duplicate trigger", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Apply(order.TriggerSubmit, createdAt)
		require.NoError(t, err)
		_, err = o.Apply(order.TriggerStockConfirmed, createdAt.Add(time.Minute))
		require.NoError(t, err)

		transition, err := o.Apply(order.TriggerStockConfirmed, createdAt.Add(time.Hour))

		require.NoError(t, err)
		assert.True(t, transition.NoOp)
		at, _ := o.TransitionedAt(order.StockConfirmed)
		assert.Equal(t, createdAt.Add(time.Minute), at)
	})

	t.Run("should refuse an order that was not constructed", func(t *testing.T) {
		var o order.Order

		_, err := o.Apply(order.TriggerSubmit, createdAt)

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AssignID(t *testing.T) {
	o := newTestOrder(t)

	require.Error(t, o.AssignID(0))
	require.NoError(t, o.AssignID(42))
	assert.Equal(t, int64(42), o.ID())
	require.ErrorIs(t, o.AssignID(43), order.ErrOrderIDIsAlreadyAssigned)
}

func TestRestoreOrder(t *testing.T) {
	source := newTestOrder(t)
	_, err := source.Apply(order.TriggerSubmit, createdAt)
	require.NoError(t, err)

	t.Run("should rebuild the aggregate", func(t *testing.T) {
		restored, err := order.RestoreOrder(7, source.Buyer(), source.Address(), source.PaymentMethod(),
			source.Items(), source.Status(), source.Transitions(), source.Description())

		require.NoError(t, err)
		assert.Equal(t, int64(7), restored.ID())
		assert.Equal(t, order.Pending, restored.Status())
		assert.Equal(t, source.Transitions(), restored.Transitions())
		assert.Equal(t, source.Description(), restored.Description())
	})

	t.Run("should reject a missing id and an unknown status", func(t *testing.T) {
		restored, err := order.RestoreOrder(0, source.Buyer(), source.Address(), source.PaymentMethod(),
			source.Items(), order.Unknown, nil, "")

		require.Error(t, err)
		assert.Nil(t, restored)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})
}
