// Package jobs provides scheduled background tasks for the depot service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and wrap a command handler,
// so a job run behaves like any other command: it opens its own unit of work
// and either commits or rolls back.
//
// # Available Jobs
//
// OutboxRelayJob runs every second and publishes the oldest pending outbox
// events to Kafka, marking them published in the same transaction.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, cfg.OutboxBatchSize, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An empty outbox is not logged. Publish failures are logged and the events
// stay pending for the next run.
package jobs
