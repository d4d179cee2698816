package commands

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrPurgeIdempotencyRecordsCommandIsNotConstructed = errors.New(
	"PurgeIdempotencyRecordsCommand must be created via NewPurgeIdempotencyRecordsCommand constructor",
)

// PurgeIdempotencyRecordsCommand removes deduplication records older than the
// retention window. Requests retried after that window run again.
type PurgeIdempotencyRecordsCommand struct {
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeIdempotencyRecordsCommand(retention time.Duration) (PurgeIdempotencyRecordsCommand, error) {
	if retention <= 0 {
		return PurgeIdempotencyRecordsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"retention", fmt.Errorf("%s is not greater than 0", retention))
	}

	return PurgeIdempotencyRecordsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PurgeIdempotencyRecordsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeIdempotencyRecordsCommandIsNotConstructed)
}

func (c PurgeIdempotencyRecordsCommand) Retention() time.Duration {
	return c.retention
}
