package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes committed integration events every second.
type OutboxRelayJob struct {
	handler OutboxRelayer
	cmd     commands.RelayOutboxCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOutboxRelayJob(handler OutboxRelayer, batchSize int, logger *slog.Logger) (*OutboxRelayJob, error) {
	cmd, err := commands.NewRelayOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}

	return &OutboxRelayJob{
		handler: handler,
		cmd:     cmd,
		cron:    newCron(),
		logger:  logger.With("component", "outbox_relay_job"),
	}, nil
}

// Run relays one batch.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	published, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "published", published, "error", err)
		return
	}
	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox relayed", "published", published)
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(everySecond, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
