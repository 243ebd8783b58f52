package tracking

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/ports"
)

// fakePositionSource lets tests push fixes to the registered subscriber.
type fakePositionSource struct {
	callback   func(kernel.Position)
	watchCalls int
	cancels    int
}

func (s *fakePositionSource) Current(_ context.Context) (kernel.Position, error) {
	return kernel.Position{}, nil
}

func (s *fakePositionSource) Watch(callback func(kernel.Position)) (ports.CancelFunc, error) {
	s.watchCalls++
	s.callback = callback
	return func() {
		s.cancels++
	}, nil
}

func (s *fakePositionSource) push(t *testing.T, lat, lng float64) {
	t.Helper()
	if s.callback == nil {
		return
	}
	s.callback(positionAt(t, lat, lng))
}

func positionAt(t *testing.T, lat, lng float64) kernel.Position {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	pos, err := kernel.NewPosition(loc, 5.0, time.Now())
	require.NoError(t, err)
	return pos
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_Tracker_delivers_significant_fixes(t *testing.T) {
	// Given
	source := &fakePositionSource{}
	tracker := NewTracker(source, 10.0, testLogger())

	var received []kernel.Position
	require.NoError(t, tracker.Start(func(pos kernel.Position) {
		received = append(received, pos)
	}))

	// When: first fix, then a jump of roughly 111 meters north
	source.push(t, 10.0, 20.0)
	source.push(t, 10.001, 20.0)

	// Then
	assert.Len(t, received, 2)
	require.NotNil(t, tracker.LastKnown())
	assert.InDelta(t, 10.001, tracker.LastKnown().Location().Latitude(), 1e-9)
}

func Test_Tracker_drops_insignificant_movement(t *testing.T) {
	// Given
	source := &fakePositionSource{}
	tracker := NewTracker(source, 10.0, testLogger())

	var received []kernel.Position
	require.NoError(t, tracker.Start(func(pos kernel.Position) {
		received = append(received, pos)
	}))

	// When: second fix moves less than a meter
	source.push(t, 10.0, 20.0)
	source.push(t, 10.000001, 20.0)

	// Then: the jitter never reaches the subscriber and lastKnown is untouched
	assert.Len(t, received, 1)
	assert.InDelta(t, 10.0, tracker.LastKnown().Location().Latitude(), 1e-9)
}

func Test_Tracker_first_fix_always_significant(t *testing.T) {
	// Given
	source := &fakePositionSource{}
	tracker := NewTracker(source, 10.0, testLogger())

	fired := false
	require.NoError(t, tracker.Start(func(kernel.Position) { fired = true }))

	// When
	source.push(t, -5.5, -42.0)

	// Then
	assert.True(t, fired)
}

func Test_Tracker_start_replaces_previous_subscriber(t *testing.T) {
	// Given
	source := &fakePositionSource{}
	tracker := NewTracker(source, 10.0, testLogger())

	firstCount := 0
	require.NoError(t, tracker.Start(func(kernel.Position) { firstCount++ }))

	secondCount := 0
	require.NoError(t, tracker.Start(func(kernel.Position) { secondCount++ }))

	// When
	source.push(t, 10.0, 20.0)

	// Then: only the latest subscriber receives fixes
	assert.Equal(t, 0, firstCount)
	assert.Equal(t, 1, secondCount)
	assert.Equal(t, 2, source.watchCalls)
	assert.Equal(t, 1, source.cancels)
}

func Test_Tracker_stop_is_idempotent_and_silences_callback(t *testing.T) {
	// Given
	source := &fakePositionSource{}
	tracker := NewTracker(source, 10.0, testLogger())

	count := 0
	require.NoError(t, tracker.Start(func(kernel.Position) { count++ }))
	callback := source.callback

	// When
	tracker.Stop()
	tracker.Stop()
	callback(positionAt(t, 10.0, 20.0))

	// Then: a late fix from a cancelled watch never reaches the subscriber
	assert.Equal(t, 0, count)
	assert.Equal(t, 1, source.cancels)
}

func Test_Tracker_non_positive_threshold_uses_default(t *testing.T) {
	tracker := NewTracker(&fakePositionSource{}, 0, testLogger())
	assert.Equal(t, DefaultSignificantChangeMeters, tracker.threshold)
}

func Test_Tracker_HasChangedSignificantly(t *testing.T) {
	tracker := NewTracker(&fakePositionSource{}, 10.0, testLogger())
	base := positionAt(t, 10.0, 20.0)

	t.Run("nil_previous_is_significant", func(t *testing.T) {
		assert.True(t, tracker.HasChangedSignificantly(base, nil))
	})

	t.Run("below_threshold_is_not_significant", func(t *testing.T) {
		near := positionAt(t, 10.00001, 20.0)
		assert.False(t, tracker.HasChangedSignificantly(near, &base))
	})

	t.Run("at_or_above_threshold_is_significant", func(t *testing.T) {
		far := positionAt(t, 10.001, 20.0)
		assert.True(t, tracker.HasChangedSignificantly(far, &base))
	})
}
