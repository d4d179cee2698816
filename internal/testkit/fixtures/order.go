// Package fixtures builds valid domain objects for tests.
package fixtures

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Now is the instant fixtures are stamped with.
var Now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func Buyer(t testing.TB) order.Buyer {
	t.Helper()
	b, err := order.NewBuyer("user-1", "Alice")
	require.NoError(t, err)
	return b
}

func Address(t testing.TB) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("1 Main St", "Seattle", "WA", "USA", "98101")
	require.NoError(t, err)
	return a
}

func PaymentMethod(t testing.TB) order.PaymentMethod {
	t.Helper()
	masked, err := kernel.MaskCardNumber("4111111111111111")
	require.NoError(t, err)
	p, err := order.NewPaymentMethod(2, "Alice", masked, Now.AddDate(2, 0, 0))
	require.NoError(t, err)
	return p
}

// Items returns a single line: product 1 "A", two units at 9.50.
func Items(t testing.TB) []order.Item {
	t.Helper()
	item, err := order.NewItem(1, "A", decimal.RequireFromString("9.50"), 2)
	require.NoError(t, err)
	return []order.Item{item}
}

// DraftOrder returns an unsaved order in Draft.
func DraftOrder(t testing.TB) *order.Order {
	t.Helper()
	o, err := order.NewOrder(Buyer(t), Address(t), PaymentMethod(t), Items(t), Now)
	require.NoError(t, err)
	return o
}

// OrderIn returns an unsaved order driven through triggers from Draft.
func OrderIn(t testing.TB, triggers ...order.Trigger) *order.Order {
	t.Helper()
	o := DraftOrder(t)
	for _, trigger := range triggers {
		_, err := o.Apply(trigger, Now)
		require.NoError(t, err)
	}
	return o
}
