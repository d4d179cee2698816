package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type GracePeriodConfirmer interface {
	Handle(ctx context.Context, cmd commands.ConfirmGracePeriodCommand) (int, error)
}

// GracePeriodJob moves Pending orders whose grace period elapsed to
// AwaitingValidation.
type GracePeriodJob struct {
	handler GracePeriodConfirmer
	cmd     commands.ConfirmGracePeriodCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewGracePeriodJob(
	handler GracePeriodConfirmer,
	gracePeriod time.Duration,
	batchSize int,
	logger *slog.Logger,
) (*GracePeriodJob, error) {
	cmd, err := commands.NewConfirmGracePeriodCommand(gracePeriod, batchSize)
	if err != nil {
		return nil, err
	}

	return &GracePeriodJob{
		handler: handler,
		cmd:     cmd,
		cron:    newCron(),
		logger:  logger.With("component", "grace_period_job"),
	}, nil
}

func (j *GracePeriodJob) Run(ctx context.Context) {
	moved, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Grace period confirmation failed", "moved", moved, "error", err)
		return
	}
	if moved > 0 {
		j.logger.InfoContext(ctx, "Orders awaiting validation", "moved", moved)
	}
}

func (j *GracePeriodJob) Start() error {
	if _, err := j.cron.AddFunc(everyTenSeconds, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Grace period job started (running every 10 seconds)")
	return nil
}

func (j *GracePeriodJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Grace period job stopped")
}
