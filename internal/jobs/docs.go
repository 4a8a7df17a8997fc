// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision) and
// drive application commands, never repositories directly.
//
// # Available Jobs
//
// 1. OutboxRelayJob - hands unpublished transition log rows to the
// notification sink (Redis pub/sub or the log), oldest first
//
// # Usage
//
//	relay, err := jobs.NewOutboxRelayJob(handler, metrics, cfg.OutboxSchedule, cfg.OutboxBatchSize, logger)
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed tick is logged and counted; the rows it did not publish stay
// pending and are picked up by the next tick.
package jobs
