package jobs

import (
	"fmt"
	"log/slog"

	"github.com/j4ckson185/apk/internal/core/application/tracking"
	"github.com/j4ckson185/apk/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	locationFlushJob *LocationFlushJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	courierID string,
	tracker *tracking.Tracker,
	reportLocationHandler commands.ReportLocationCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		locationFlushJob: NewLocationFlushJob(courierID, tracker, reportLocationHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.locationFlushJob.Start(); err != nil {
		return fmt.Errorf("failed to start location flush job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.locationFlushJob.Stop()
}
