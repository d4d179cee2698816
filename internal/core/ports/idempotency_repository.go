package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/idempotency"
)

// IdempotencyRepository stores deduplication records.
type IdempotencyRepository interface {
	// Reserve inserts an incomplete record. The (request id, command type) pair
	// is unique: a second reservation fails with errs.ErrAlreadyExists, after
	// waiting for a concurrent reserving transaction to finish.
	Reserve(ctx context.Context, record *idempotency.Record) error

	// Complete stores the result of a reserved record.
	Complete(ctx context.Context, record *idempotency.Record) error

	// Get retrieves a record by key.
	// Returns *errs.ObjectNotFoundError when the key was never reserved or the
	// reserving transaction has not committed.
	Get(ctx context.Context, key idempotency.Key) (*idempotency.Record, error)

	// DeleteCompletedBefore purges records completed before the given instant
	// and returns how many were removed.
	DeleteCompletedBefore(ctx context.Context, before time.Time) (int64, error)
}
