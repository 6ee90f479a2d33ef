// Package jobs provides scheduled background tasks for the back office.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the order lifecycle.
//
// # Available Jobs
//
// 1. NotificationDispatchJob - Runs every second to drain the notification
// outbox: pending status-changed messages are published to the customer
// channel and marked dispatched once the broker accepted them.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatch job uses the cron expression "* * * * * *" which means it
// runs every second, keeping the delay between a committed transition and
// its customer notification small.
//
// # Error Handling
//
// Dispatch failures are logged and never retried within a run: the outbox
// rows stay pending and the next run picks them up, which is what makes
// delivery at-least-once.
package jobs
