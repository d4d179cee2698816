package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxRelayer struct{ mock.Mock }

func (m *MockOutboxRelayer) Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockGracePeriodConfirmer struct{ mock.Mock }

func (m *MockGracePeriodConfirmer) Handle(ctx context.Context, cmd commands.ConfirmGracePeriodCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockIdempotencyPurger struct{ mock.Mock }

func (m *MockIdempotencyPurger) Handle(ctx context.Context, cmd commands.PurgeIdempotencyRecordsCommand) (int64, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(int64), args.Error(1)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestOutboxRelayJob_Run(t *testing.T) {
	t.Run("should relay one batch", func(t *testing.T) {
		handler := new(MockOutboxRelayer)
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RelayOutboxCommand) bool {
			return cmd.BatchSize() == 50
		})).Return(3, nil).Once()
		logger, buf := bufferLogger()

		job, err := jobs.NewOutboxRelayJob(handler, 50, logger)
		require.NoError(t, err)
		job.Run(t.Context())

		handler.AssertExpectations(t)
		assert.Contains(t, buf.String(), "published=3")
	})

	t.Run("should log a failed relay", func(t *testing.T) {
		handler := new(MockOutboxRelayer)
		handler.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("nats: timeout")).Once()
		logger, buf := bufferLogger()

		job, err := jobs.NewOutboxRelayJob(handler, 50, logger)
		require.NoError(t, err)
		job.Run(t.Context())

		assert.Contains(t, buf.String(), "Outbox relay failed")
		assert.Contains(t, buf.String(), "component=outbox_relay_job")
	})

	t.Run("should refuse an empty batch", func(t *testing.T) {
		logger, _ := bufferLogger()
		_, err := jobs.NewOutboxRelayJob(new(MockOutboxRelayer), 0, logger)
		require.Error(t, err)
	})
}

func TestGracePeriodJob_Run(t *testing.T) {
	handler := new(MockGracePeriodConfirmer)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ConfirmGracePeriodCommand) bool {
		return cmd.GracePeriod() == time.Minute && cmd.BatchSize() == 100
	})).Return(2, nil).Once()
	logger, buf := bufferLogger()

	job, err := jobs.NewGracePeriodJob(handler, time.Minute, 100, logger)
	require.NoError(t, err)
	job.Run(t.Context())

	handler.AssertExpectations(t)
	assert.Contains(t, buf.String(), "moved=2")

	_, err = jobs.NewGracePeriodJob(handler, -time.Second, 100, logger)
	require.Error(t, err)
}

func TestIdempotencyRetentionJob_Run(t *testing.T) {
	handler := new(MockIdempotencyPurger)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PurgeIdempotencyRecordsCommand) bool {
		return cmd.Retention() == 24*time.Hour
	})).Return(int64(5), nil).Once()
	handler.On("Handle", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()
	logger, buf := bufferLogger()

	job, err := jobs.NewIdempotencyRetentionJob(handler, 24*time.Hour, logger)
	require.NoError(t, err)
	job.Run(t.Context())
	job.Run(t.Context())

	assert.Contains(t, buf.String(), "deleted=5")
	assert.Contains(t, buf.String(), "Idempotency record purge failed")
}

func TestJobManager_StartAndStop(t *testing.T) {
	logger, buf := bufferLogger()
	relay := new(MockOutboxRelayer)
	relay.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()
	grace := new(MockGracePeriodConfirmer)
	grace.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	relayJob, err := jobs.NewOutboxRelayJob(relay, 10, logger)
	require.NoError(t, err)
	graceJob, err := jobs.NewGracePeriodJob(grace, time.Minute, 10, logger)
	require.NoError(t, err)
	retentionJob, err := jobs.NewIdempotencyRetentionJob(new(MockIdempotencyPurger), time.Hour, logger)
	require.NoError(t, err)

	manager := jobs.NewJobManager(relayJob, graceJob, retentionJob)
	require.NoError(t, manager.StartAll())
	manager.StopAll()

	out := buf.String()
	assert.Contains(t, out, "Outbox relay job started")
	assert.Contains(t, out, "Grace period job started")
	assert.Contains(t, out, "Idempotency retention job started")
	assert.Contains(t, out, "Idempotency retention job stopped")
}
