package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Schedules, with a leading seconds field.
const (
	everySecond     = "* * * * * *"
	everyTenSeconds = "*/10 * * * * *"
	hourly          = "0 0 * * * *"
)

// newCron skips a tick while the previous run of the same job is still going.
func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs  []job
	names []string
}

func NewJobManager(
	outboxRelayJob *OutboxRelayJob,
	gracePeriodJob *GracePeriodJob,
	retentionJob *IdempotencyRetentionJob,
) *JobManager {
	return &JobManager{
		jobs:  []job{outboxRelayJob, gracePeriodJob, retentionJob},
		names: []string{"outbox relay", "grace period", "idempotency retention"},
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks to finish.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
