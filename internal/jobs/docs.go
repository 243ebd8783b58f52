// Package jobs provides scheduled background tasks for the courier app.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required while a delivery session is active.
//
// # Available Jobs
//
// 1. LocationFlushJob - Runs every five seconds to persist the courier's latest significant position
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(courierID, tracker, reportLocationHandler, logger)
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
// The flush job uses the cron expression "*/5 * * * * *" which means it runs
// every five seconds. Combined with the tracker's significant-change filter
// this keeps store writes proportional to actual movement rather than to GPS
// sample rate.
//
// # Error Handling
//
// - A tick with no position yet, or with no significant movement, is a no-op
// - Store write failures are logged and retried naturally on the next tick
package jobs
