package jobs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/j4ckson185/apk/internal/core/application/tracking"
	"github.com/j4ckson185/apk/internal/core/application/usecases/commands"
	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
)

// LocationFlushJob persists the courier's latest accepted GPS fix.
// Runs every five seconds and writes only when the position moved
// significantly since the last flush, so an idle courier produces no
// store traffic.
type LocationFlushJob struct {
	courierID string
	tracker   *tracking.Tracker
	handler   commands.ReportLocationCommandHandler
	cron      *cron.Cron
	logger    *slog.Logger

	mu          sync.Mutex
	lastFlushed *kernel.Position
}

// NewLocationFlushJob creates a job that flushes significant position changes
// for the given courier.
func NewLocationFlushJob(
	courierID string,
	tracker *tracking.Tracker,
	handler commands.ReportLocationCommandHandler,
	logger *slog.Logger,
) *LocationFlushJob {
	return &LocationFlushJob{
		courierID: courierID,
		tracker:   tracker,
		handler:   handler,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "location_flush_job"),
	}
}

// Start begins the flush job to run every five seconds.
func (j *LocationFlushJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		if err := j.flush(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Location flush job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location flush job started (running every five seconds)")
	return nil
}

// Stop stops the flush job.
func (j *LocationFlushJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location flush job stopped")
}

func (j *LocationFlushJob) flush(ctx context.Context) error {
	position := j.tracker.LastKnown()
	if position == nil {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.tracker.HasChangedSignificantly(*position, j.lastFlushed) {
		return nil
	}

	cmd, err := commands.NewReportLocationCommand(
		j.courierID, position.Location(), position.Timestamp())
	if err != nil {
		return err
	}

	if err := j.handler.Handle(ctx, cmd); err != nil {
		return err
	}

	j.lastFlushed = position
	return nil
}
