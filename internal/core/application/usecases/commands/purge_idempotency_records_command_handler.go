package commands

import (
	"context"

	"ordering/internal/pkg/clock"
)

// PurgeIdempotencyRecordsCommandHandler deletes completed deduplication records
// past their retention window.
type PurgeIdempotencyRecordsCommandHandler struct {
	uowFactory IdempotencyUoWFactory
	clock      clock.Clock
}

func NewPurgeIdempotencyRecordsCommandHandler(
	uowFactory IdempotencyUoWFactory,
	clk clock.Clock,
) PurgeIdempotencyRecordsCommandHandler {
	return PurgeIdempotencyRecordsCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle returns how many records were deleted.
func (h *PurgeIdempotencyRecordsCommandHandler) Handle(ctx context.Context, cmd PurgeIdempotencyRecordsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	before := h.clock.Now().Add(-cmd.Retention())
	return h.uowFactory.Create().IdempotencyRepository().DeleteCompletedBefore(ctx, before)
}
