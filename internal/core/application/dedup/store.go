package dedup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/clock"
	"ordering/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// ErrInProgress is returned when another caller holds the key and did not
// complete it within the wait budget. Retrying later is safe.
var ErrInProgress = errors.New("request is still in progress")

const savePoint = "dedup_compute"

// Compute runs the deduplicated work inside the store's transaction.
//
// A nil error with a failed Result is a terminal business failure: its writes
// are rolled back and the failure is recorded so replays return it.
// A non-nil error is an infrastructure failure: nothing is recorded and the
// caller may retry.
type Compute func(ctx context.Context, uow ports.UnitOfWork) (idempotency.Result, error)

// Store implements record-if-absent on top of ports.IdempotencyRepository.
type Store struct {
	uowFactory     ports.UnitOfWorkFactory
	clock          clock.Clock
	logger         *slog.Logger
	maxWaitRetries uint64
	initialWait    time.Duration
	maxWait        time.Duration
	isRetryable    func(error) bool
}

// Option configures a Store.
type Option func(*Store)

// WithRetryable marks storage failures that rolled back the whole attempt
// and can be run again, such as serialization failures or deadlocks.
func WithRetryable(isRetryable func(error) bool) Option {
	return func(s *Store) {
		s.isRetryable = isRetryable
	}
}

// NewStore creates a store. maxWaitRetries bounds how long a losing caller
// polls for the winner's result.
func NewStore(
	uowFactory ports.UnitOfWorkFactory,
	clk clock.Clock,
	logger *slog.Logger,
	maxWaitRetries uint64,
	opts ...Option,
) *Store {
	s := &Store{
		uowFactory:     uowFactory,
		clock:          clk,
		logger:         logger.With("component", "dedup"),
		maxWaitRetries: maxWaitRetries,
		initialWait:    10 * time.Millisecond,
		maxWait:        500 * time.Millisecond,
		isRetryable:    func(error) bool { return false },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordIfAbsent returns the stored result for key if one exists. Otherwise it
// runs compute exactly once, stores its outcome atomically with compute's own
// writes and returns it. wasAlreadyDone reports whether the result came from
// a previous execution.
func (s *Store) RecordIfAbsent(
	ctx context.Context,
	key idempotency.Key,
	compute Compute,
) (result idempotency.Result, wasAlreadyDone bool, err error) {
	if err = key.Validate(); err != nil {
		return idempotency.Result{}, false, err
	}

	operation := func() error {
		r, done, attemptErr := s.attempt(ctx, key, compute)
		if errors.Is(attemptErr, ErrInProgress) {
			return attemptErr
		}
		if attemptErr != nil && s.isRetryable(attemptErr) {
			s.logger.WarnContext(ctx, "Retrying after transaction conflict", "key", key.String(), "error", attemptErr)
			return attemptErr
		}
		if attemptErr != nil {
			return backoff.Permanent(attemptErr)
		}
		result, wasAlreadyDone = r, done
		return nil
	}

	if err = backoff.Retry(operation, s.waitPolicy(ctx)); err != nil {
		return idempotency.Result{}, false, err
	}
	return result, wasAlreadyDone, nil
}

func (s *Store) waitPolicy(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialWait
	b.MaxInterval = s.maxWait
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, s.maxWaitRetries), ctx)
}

// attempt tries to reserve key once. It either wins and runs compute, finds a
// completed record, or reports ErrInProgress.
func (s *Store) attempt(ctx context.Context, key idempotency.Key, compute Compute) (idempotency.Result, bool, error) {
	record, err := idempotency.NewRecord(key, s.clock.Now())
	if err != nil {
		return idempotency.Result{}, false, err
	}

	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return idempotency.Result{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback(ctx)
		}
	}()

	err = uow.IdempotencyRepository().Reserve(ctx, record)
	if errors.Is(err, errs.ErrAlreadyExists) {
		_ = uow.Rollback(ctx)
		committed = true
		return s.completed(ctx, key)
	}
	if err != nil {
		return idempotency.Result{}, false, fmt.Errorf("failed to reserve %s: %w", key, err)
	}

	if err = uow.SavePoint(ctx, savePoint); err != nil {
		return idempotency.Result{}, false, err
	}

	result, err := compute(ctx, uow)
	if err != nil {
		return idempotency.Result{}, false, err
	}

	if !result.Succeeded() {
		if err = uow.RollbackTo(ctx, savePoint); err != nil {
			return idempotency.Result{}, false, err
		}
	}

	if err = record.Complete(result, s.clock.Now()); err != nil {
		return idempotency.Result{}, false, err
	}
	if err = uow.IdempotencyRepository().Complete(ctx, record); err != nil {
		return idempotency.Result{}, false, fmt.Errorf("failed to complete %s: %w", key, err)
	}

	if err = uow.Commit(ctx); err != nil {
		committed = true
		return idempotency.Result{}, false, fmt.Errorf("failed to commit %s: %w", key, err)
	}
	committed = true

	return result, false, nil
}

// completed reads the winner's record outside of any transaction.
func (s *Store) completed(ctx context.Context, key idempotency.Key) (idempotency.Result, bool, error) {
	record, err := s.uowFactory.Create().IdempotencyRepository().Get(ctx, key)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return idempotency.Result{}, false, fmt.Errorf("%s: %w", key, ErrInProgress)
	}
	if err != nil {
		return idempotency.Result{}, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !record.IsCompleted() {
		return idempotency.Result{}, false, fmt.Errorf("%s: %w", key, ErrInProgress)
	}

	s.logger.DebugContext(ctx, "Returning stored result", "key", key.String(), "succeeded", record.Result().Succeeded())
	return record.Result(), true, nil
}
