package idempotency_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewKey(t *testing.T) {
	t.Run("should build a key", func(t *testing.T) {
		id := kernel.NewUUID()

		key, err := idempotency.NewKey(id, "CreateOrder")

		require.NoError(t, err)
		assert.True(t, key.RequestID.IsEqual(id))
		assert.Equal(t, id.String()+"/CreateOrder", key.String())
	})

	t.Run("should reject a nil request id and an empty command type", func(t *testing.T) {
		_, err := idempotency.NewKey(kernel.UUID{}, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Contains(t, err.Error(), "commandType")
	})
}

func TestResult(t *testing.T) {
	payload := []byte(`{"orderId":1}`)

	success := idempotency.Success(payload)
	payload[0] = 'x'

	assert.True(t, success.Succeeded())
	assert.Equal(t, `{"orderId":1}`, string(success.Payload()))
	assert.Empty(t, success.Reason())

	failure := idempotency.Failure("order 7 not found")
	assert.False(t, failure.Succeeded())
	assert.Equal(t, "order 7 not found", failure.Reason())
	assert.Empty(t, failure.Payload())
}

func TestRecord_Complete(t *testing.T) {
	key, err := idempotency.NewKey(kernel.NewUUID(), "ShipOrder")
	require.NoError(t, err)

	record, err := idempotency.NewRecord(key, now)
	require.NoError(t, err)
	assert.False(t, record.IsCompleted())
	_, ok := record.CompletedAt()
	assert.False(t, ok)

	require.NoError(t, record.Complete(idempotency.Success(nil), now.Add(time.Second)))
	assert.True(t, record.IsCompleted())
	at, ok := record.CompletedAt()
	assert.True(t, ok)
	assert.Equal(t, now.Add(time.Second), at)

	err = record.Complete(idempotency.Failure("late"), now.Add(time.Minute))
	require.ErrorIs(t, err, idempotency.ErrRecordIsAlreadyCompleted)
	assert.True(t, record.Result().Succeeded())
}

func TestRestoreRecord(t *testing.T) {
	key, err := idempotency.NewKey(kernel.NewUUID(), "CancelOrder")
	require.NoError(t, err)

	pending, err := idempotency.RestoreRecord(key, idempotency.Result{}, now, nil)
	require.NoError(t, err)
	assert.False(t, pending.IsCompleted())

	completedAt := now.Add(time.Second)
	done, err := idempotency.RestoreRecord(key, idempotency.Failure("shipped"), now, &completedAt)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted())
	assert.Equal(t, "shipped", done.Result().Reason())

	_, err = idempotency.RestoreRecord(idempotency.Key{}, idempotency.Result{}, now, nil)
	require.Error(t, err)
}
