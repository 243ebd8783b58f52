package ports

import (
	"context"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
)

// CancelFunc releases a watch registration. Safe to call more than once.
type CancelFunc func()

// PositionSource abstracts the device positioning hardware. Permission
// handling belongs to the implementation; the core only consumes the fixes.
type PositionSource interface {
	// Current returns a single fix on demand.
	Current(ctx context.Context) (kernel.Position, error)

	// Watch registers a callback invoked for every fix the source reports.
	// The returned CancelFunc stops delivery; a fix already in flight when
	// it returns may still be delivered, so consumers needing a hard stop
	// must gate stale callbacks themselves.
	Watch(callback func(kernel.Position)) (CancelFunc, error)
}
