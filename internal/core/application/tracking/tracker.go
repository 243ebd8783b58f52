// Package tracking maintains the courier's live position: it subscribes to
// the device positioning source, filters out insignificant movement and
// retains only the most recent accepted fix.
package tracking

import (
	"log/slog"
	"sync"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/ports"
)

// DefaultSignificantChangeMeters is the default threshold below which a new
// fix is considered noise and dropped.
const DefaultSignificantChangeMeters = 10.0

// Tracker produces a de-duplicated stream of courier positions.
//
// Exactly one subscriber is active at a time: starting the tracker again
// replaces the previous subscriber instead of queueing alongside it. Stopping
// releases the positioning watch synchronously, so no callback fires after
// Stop returns. Stop is idempotent.
type Tracker struct {
	source    ports.PositionSource
	threshold float64
	logger    *slog.Logger

	mu         sync.Mutex
	cancel     ports.CancelFunc
	generation uint64
	lastKnown  *kernel.Position
}

// NewTracker creates a tracker over the given positioning source.
// A non-positive threshold falls back to DefaultSignificantChangeMeters.
func NewTracker(source ports.PositionSource, thresholdMeters float64, logger *slog.Logger) *Tracker {
	if thresholdMeters <= 0 {
		thresholdMeters = DefaultSignificantChangeMeters
	}
	return &Tracker{
		source:    source,
		threshold: thresholdMeters,
		logger:    logger.With("component", "location_tracker"),
	}
}

// Start begins continuous tracking, delivering every significant fix to
// callback. Any previously active subscriber is replaced.
func (t *Tracker) Start(callback func(kernel.Position)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.generation++
	gen := t.generation

	cancel, err := t.source.Watch(func(pos kernel.Position) {
		t.onFix(gen, pos, callback)
	})
	if err != nil {
		return err
	}

	t.cancel = cancel
	t.logger.Info("tracking started", "threshold_m", t.threshold)
	return nil
}

// Stop releases the active subscription. Calling Stop when not tracking is a
// no-op. After Stop returns, the subscriber callback is never invoked again.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel == nil {
		return
	}
	t.cancel()
	t.cancel = nil
	t.generation++
	t.logger.Info("tracking stopped")
}

// LastKnown returns the most recent accepted position, or nil before the
// first significant fix.
func (t *Tracker) LastKnown() *kernel.Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastKnown
}

// HasChangedSignificantly reports whether newPos is far enough from oldPos to
// be worth keeping: true when oldPos is absent or the distance meets the
// configured threshold.
func (t *Tracker) HasChangedSignificantly(newPos kernel.Position, oldPos *kernel.Position) bool {
	if oldPos == nil {
		return true
	}

	distance, err := newPos.DistanceTo(*oldPos)
	if err != nil {
		// An unconstructed position cannot be compared; treat it as new.
		return true
	}
	return distance >= t.threshold
}

// onFix applies the significant-change filter and forwards accepted fixes to
// the subscriber, provided the registration is still the active one.
func (t *Tracker) onFix(gen uint64, pos kernel.Position, callback func(kernel.Position)) {
	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return
	}
	if !t.HasChangedSignificantly(pos, t.lastKnown) {
		t.mu.Unlock()
		return
	}
	t.lastKnown = &pos
	t.mu.Unlock()

	callback(pos)
}
