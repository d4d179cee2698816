package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/integration"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/testkit/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingEvents(t *testing.T, n int) []integration.Event {
	t.Helper()
	events := make([]integration.Event, 0, n)
	for i := range n {
		e, err := integration.NewEvent(integration.TopicOrderStarted, int64(i+1),
			integration.OrderStatusChanged{OrderID: int64(i + 1), Status: "Pending", BuyerID: "user-1"}, fixtures.Now)
		require.NoError(t, err)
		events = append(events, e)
	}
	return events
}

func TestRelayOutboxCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	events := pendingEvents(t, 2)
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	outbox := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("GetUnpublished", ctx, 10).Return(events, nil).Once(),
		publisher.On("Publish", ctx, events[0]).Return(nil).Once(),
		publisher.On("Publish", ctx, events[1]).Return(nil).Once(),
		outbox.On("MarkPublished", ctx, []kernel.UUID{events[0].ID, events[1].ID}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRelayOutboxCommandHandler(factory, publisher)
	published, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, published)
	outbox.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_StopsAtFirstPublishError(t *testing.T) {
	ctx := t.Context()
	events := pendingEvents(t, 3)
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	outbox := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("GetUnpublished", ctx, 10).Return(events, nil).Once(),
		publisher.On("Publish", ctx, events[0]).Return(nil).Once(),
		publisher.On("Publish", ctx, events[1]).Return(errors.New("bus unavailable")).Once(),
		outbox.On("MarkPublished", ctx, []kernel.UUID{events[0].ID}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRelayOutboxCommandHandler(factory, publisher)
	published, err := h.Handle(ctx, cmd)

	require.ErrorContains(t, err, "bus unavailable")
	assert.Equal(t, 1, published)
	publisher.AssertNotCalled(t, "Publish", ctx, events[2])
	outbox.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_NothingToPublish(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	outbox := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("GetUnpublished", ctx, 10).Return(nil, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRelayOutboxCommandHandler(factory, new(MockEventPublisher))
	published, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, published)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewRelayOutboxCommandHandler(factory, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestRelayOutboxCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	events := pendingEvents(t, 1)
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	outbox := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("GetUnpublished", ctx, 10).Return(events, nil).Once(),
		publisher.On("Publish", ctx, events[0]).Return(nil).Once(),
		outbox.On("MarkPublished", ctx, []kernel.UUID{events[0].ID}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRelayOutboxCommandHandler(factory, publisher)
	published, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	assert.Zero(t, published)
}

func TestRelayOutboxCommandHandler_Handle_WithMemoryOutbox(t *testing.T) {
	ctx := t.Context()
	db := newSeededOutbox(t, 3)
	cmd, err := commands.NewRelayOutboxCommand(2)
	require.NoError(t, err)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("integration.Event")).Return(nil)

	h := commands.NewRelayOutboxCommandHandler(outboxUoWFactory{db: db}, publisher)

	first, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	second, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	third, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 1, 0}, []int{first, second, third})
	assert.Len(t, db.PublishedEvents(), 3)
	publisher.AssertNumberOfCalls(t, "Publish", 3)
}
