package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type IdempotencyPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeIdempotencyRecordsCommand) (int64, error)
}

// IdempotencyRetentionJob deletes completed deduplication records once an hour.
// A request resent after the retention window runs again.
type IdempotencyRetentionJob struct {
	handler IdempotencyPurger
	cmd     commands.PurgeIdempotencyRecordsCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewIdempotencyRetentionJob(
	handler IdempotencyPurger,
	retention time.Duration,
	logger *slog.Logger,
) (*IdempotencyRetentionJob, error) {
	cmd, err := commands.NewPurgeIdempotencyRecordsCommand(retention)
	if err != nil {
		return nil, err
	}

	return &IdempotencyRetentionJob{
		handler: handler,
		cmd:     cmd,
		cron:    newCron(),
		logger:  logger.With("component", "idempotency_retention_job"),
	}, nil
}

func (j *IdempotencyRetentionJob) Run(ctx context.Context) {
	deleted, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Idempotency record purge failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Idempotency records purged", "deleted", deleted, "retention", j.cmd.Retention())
}

func (j *IdempotencyRetentionJob) Start() error {
	if _, err := j.cron.AddFunc(hourly, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Idempotency retention job started (running hourly)")
	return nil
}

func (j *IdempotencyRetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Idempotency retention job stopped")
}
