// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Publishes domain events stored in the outbox table to Kafka
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	relay := jobs.NewOutboxRelayJob(publishOutboxHandler, "*/2 * * * * *", 100, recorder, logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with a leading seconds field.
// Overlapping runs are skipped, so a slow broker never causes concurrent relays.
//
// # Error Handling
//
// A failed relay is logged and retried on the next tick. Messages published
// before the failure are already marked and are not sent again.
package jobs
