// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3:
//
//  1. OutboxRelayJob - every second, publishes committed integration events
//  2. GracePeriodJob - every 10 seconds, moves Pending orders past their grace period to AwaitingValidation
//  3. IdempotencyRetentionJob - hourly, deletes completed deduplication records past retention
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayJob, graceJob, retentionJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Every job logs handler errors and retries on its next tick. A tick is
// skipped while the previous run of the same job is still in progress.
package jobs
