package commands

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrConfirmGracePeriodCommandIsNotConstructed = errors.New(
	"ConfirmGracePeriodCommand must be created via NewConfirmGracePeriodCommand constructor",
)

// ConfirmGracePeriodCommand moves Pending orders whose grace period elapsed
// to AwaitingValidation. Until then the buyer may still cancel cheaply.
type ConfirmGracePeriodCommand struct {
	gracePeriod time.Duration
	batchSize   int

	guard guard.ConstructorGuard
}

func NewConfirmGracePeriodCommand(gracePeriod time.Duration, batchSize int) (ConfirmGracePeriodCommand, error) {
	var problems []error
	if gracePeriod < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"gracePeriod", fmt.Errorf("%s is negative", gracePeriod)))
	}
	if batchSize <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize)))
	}
	if err := errors.Join(problems...); err != nil {
		return ConfirmGracePeriodCommand{}, err
	}

	return ConfirmGracePeriodCommand{
		gracePeriod: gracePeriod,
		batchSize:   batchSize,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmGracePeriodCommand) Validate() error {
	return c.guard.Validate(ErrConfirmGracePeriodCommandIsNotConstructed)
}

func (c ConfirmGracePeriodCommand) GracePeriod() time.Duration {
	return c.gracePeriod
}

func (c ConfirmGracePeriodCommand) BatchSize() int {
	return c.batchSize
}
