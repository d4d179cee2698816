package natsstan_test

import (
	"context"
	"errors"
	"testing"

	"ordering/internal/adapters/out/natsstan"
	"ordering/internal/core/application/integration"
	"ordering/internal/testkit/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConn struct{ mock.Mock }

func (m *MockConn) Publish(subject string, data []byte) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func TestPublisher_Publish(t *testing.T) {
	event, err := integration.NewEvent(integration.TopicOrderPaid, 3,
		integration.OrderStatusChanged{OrderID: 3, Status: "Paid", BuyerID: "user-1"}, fixtures.Now)
	require.NoError(t, err)

	conn := new(MockConn)
	conn.On("Publish", integration.TopicOrderPaid, mock.MatchedBy(func(data []byte) bool {
		decoded, err := integration.Decode(data)
		return err == nil && decoded.ID.IsEqual(event.ID) && decoded.OrderID == 3
	})).Return(nil).Once()

	err = natsstan.NewPublisher(conn).Publish(t.Context(), event)

	require.NoError(t, err)
	conn.AssertExpectations(t)
}

func TestPublisher_Publish_Errors(t *testing.T) {
	event, err := integration.NewEvent(integration.TopicOrderPaid, 3, nil, fixtures.Now)
	require.NoError(t, err)

	conn := new(MockConn)
	conn.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats: timeout")).Once()
	require.EqualError(t, natsstan.NewPublisher(conn).Publish(t.Context(), event), "nats: timeout")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.ErrorIs(t, natsstan.NewPublisher(conn).Publish(ctx, event), context.Canceled)
	assert.Len(t, conn.Calls, 1)
}
