package paymentprocessor_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"ordering/internal/core/application/integration"
	"ordering/internal/paymentprocessor"
	"ordering/internal/pkg/clock"
	"ordering/internal/testkit/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event integration.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func stockConfirmed(t *testing.T, orderID int64) []byte {
	t.Helper()
	event, err := integration.NewEvent(integration.TopicOrderStockConfirmed, orderID,
		integration.OrderStatusChanged{OrderID: orderID, Status: "StockConfirmed", BuyerID: "user-1"}, fixtures.Now)
	require.NoError(t, err)
	data, err := integration.Encode(event)
	require.NoError(t, err)
	return data
}

func newProcessor(publisher *MockEventPublisher, succeed bool) *paymentprocessor.Processor {
	return paymentprocessor.NewProcessor(publisher, succeed, clock.NewManual(fixtures.Now),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestProcessor_React(t *testing.T) {
	tests := []struct {
		name    string
		succeed bool
		reply   string
	}{
		{name: "should report a successful payment", succeed: true, reply: integration.TopicPaymentSucceeded},
		{name: "should report a failed payment", succeed: false, reply: integration.TopicPaymentFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher := new(MockEventPublisher)
			publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e integration.Event) bool {
				return e.Topic == tt.reply && e.OrderID == 7 && e.OccurredAt.Equal(fixtures.Now)
			})).Return(nil).Once()

			err := newProcessor(publisher, tt.succeed).React(t.Context(), integration.TopicOrderStockConfirmed, stockConfirmed(t, 7))

			require.NoError(t, err)
			publisher.AssertExpectations(t)
		})
	}
}

func TestProcessor_React_Drops(t *testing.T) {
	publisher := new(MockEventPublisher)
	processor := newProcessor(publisher, true)

	require.NoError(t, processor.React(t.Context(), integration.TopicOrderStockConfirmed, []byte("{")))
	require.NoError(t, processor.React(t.Context(), integration.TopicOrderPaid, stockConfirmed(t, 7)))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProcessor_React_PublishFailureIsRedelivered(t *testing.T) {
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats: timeout")).Once()

	err := newProcessor(publisher, true).React(t.Context(), integration.TopicOrderStockConfirmed, stockConfirmed(t, 7))

	require.ErrorContains(t, err, "failed to publish payment.succeeded for order 7")
	assert.Equal(t, []string{integration.TopicOrderStockConfirmed}, newProcessor(publisher, true).Topics())
}

func TestProcessor_React_RedeliveryRepliesWithSameEventID(t *testing.T) {
	publisher := new(MockEventPublisher)
	var published []integration.Event
	publisher.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		published = append(published, args.Get(1).(integration.Event))
	}).Return(nil).Twice()
	processor := newProcessor(publisher, true)
	message := stockConfirmed(t, 7)

	require.NoError(t, processor.React(t.Context(), integration.TopicOrderStockConfirmed, message))
	require.NoError(t, processor.React(t.Context(), integration.TopicOrderStockConfirmed, message))

	require.Len(t, published, 2)
	assert.True(t, published[0].ID.IsEqual(published[1].ID))

	cause, err := integration.Decode(message)
	require.NoError(t, err)
	assert.False(t, published[0].ID.IsEqual(cause.ID))
	publisher.AssertExpectations(t)
}
