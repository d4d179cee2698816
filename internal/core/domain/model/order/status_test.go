package order_test

import (
	"fmt"
	"testing"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Draft))
		assert.Equal(t, 2, int(order.Pending))
		assert.Equal(t, 3, int(order.AwaitingValidation))
		assert.Equal(t, 4, int(order.StockConfirmed))
		assert.Equal(t, 5, int(order.Paid))
		assert.Equal(t, 6, int(order.Shipped))
		assert.Equal(t, 7, int(order.Cancelled))
	})

	t.Run("should list statuses in lifecycle order", func(t *testing.T) {
		assert.Equal(t, []order.Status{
			order.Draft,
			order.Pending,
			order.AwaitingValidation,
			order.StockConfirmed,
			order.Paid,
			order.Shipped,
			order.Cancelled,
		}, order.Statuses())
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range order.Statuses() {
		t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		err := order.Status(99).Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "99 is not a valid status")
	})
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "Unknown"},
		{order.Draft, "Draft"},
		{order.Pending, "Pending"},
		{order.AwaitingValidation, "AwaitingValidation"},
		{order.StockConfirmed, "StockConfirmed"},
		{order.Paid, "Paid"},
		{order.Shipped, "Shipped"},
		{order.Cancelled, "Cancelled"},
		{order.Status(-1), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Shipped.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, status := range []order.Status{order.Draft, order.Pending, order.AwaitingValidation, order.StockConfirmed, order.Paid} {
		assert.False(t, status.IsTerminal(), status.String())
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("should round trip every status", func(t *testing.T) {
		for _, status := range order.Statuses() {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "Unknown", "shipped"} {
			_, err := order.ParseStatus(name)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, name)
		}
	})
}
