package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should compute the line total", func(t *testing.T) {
		item, err := order.NewItem(3, "Mug", decimal.RequireFromString("4.25"), 4)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, 3, item.ProductID())
		assert.Equal(t, "Mug", item.ProductName())
		assert.Equal(t, 4, item.Units())
		assert.True(t, decimal.RequireFromString("17").Equal(item.Total()))
	})

	t.Run("should collect every problem", func(t *testing.T) {
		_, err := order.NewItem(0, "", decimal.NewFromInt(-1), 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, order.Item{}.Validate(), order.ErrItemIsNotConstructed)
	})
}

func TestNewPaymentMethod(t *testing.T) {
	expiration := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should accept a masked card number", func(t *testing.T) {
		pm, err := order.NewPaymentMethod(1, "Alice", "XXXXXXXXXXXX1111", expiration)

		require.NoError(t, err)
		assert.Equal(t, "XXXXXXXXXXXX1111", pm.MaskedCardNumber())
		assert.Equal(t, expiration, pm.Expiration())
	})

	t.Run("should refuse a raw card number", func(t *testing.T) {
		_, err := order.NewPaymentMethod(1, "Alice", "4111111111111111", expiration)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.NotContains(t, err.Error(), "4111111111111111")
	})
}

func TestNewBuyer(t *testing.T) {
	_, err := order.NewBuyer("", "Alice")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	buyer, err := order.NewBuyer("user-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", buyer.UserName())
}

func TestNewPreview(t *testing.T) {
	item, err := order.NewItem(1, "A", decimal.NewFromInt(5), 2)
	require.NoError(t, err)

	preview, err := order.NewPreview("user-1", []order.Item{item, item})

	require.NoError(t, err)
	assert.Equal(t, order.Draft, preview.Status())
	assert.True(t, decimal.NewFromInt(20).Equal(preview.Total()))

	_, err = order.NewPreview("user-1", nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
