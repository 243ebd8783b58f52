// Package positioning bridges device position reports into the core. The
// courier's device pushes fixes over the API; the gateway fans them out to
// the single registered watcher and remembers the most recent one.
package positioning

import (
	"context"
	"sync"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/ports"
	"github.com/j4ckson185/apk/internal/pkg/errs"
)

// Gateway implements ports.PositionSource over pushed reports.
type Gateway struct {
	mu         sync.Mutex
	current    *kernel.Position
	watcher    func(kernel.Position)
	generation uint64
}

// NewGateway creates an empty gateway. Current fails until the first report
// arrives.
func NewGateway() *Gateway {
	return &Gateway{}
}

// Report feeds a device fix into the gateway, delivering it to the active
// watcher if one is registered.
func (g *Gateway) Report(position kernel.Position) error {
	if err := position.Validate(); err != nil {
		return err
	}

	// The watcher is invoked outside the lock: it may call back into
	// consumer code that takes its own locks.
	g.mu.Lock()
	g.current = &position
	watcher := g.watcher
	g.mu.Unlock()

	if watcher != nil {
		watcher(position)
	}
	return nil
}

// Current returns the most recent reported fix.
func (g *Gateway) Current(_ context.Context) (kernel.Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current == nil {
		return kernel.Position{}, errs.NewObjectNotFoundError("position", "current")
	}
	return *g.current, nil
}

// Watch registers the callback as the single active watcher, replacing any
// previous one. The returned cancel stops future delivery and is safe to call
// more than once; a report already in flight may still reach the callback.
func (g *Gateway) Watch(callback func(kernel.Position)) (ports.CancelFunc, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.generation++
	gen := g.generation
	g.watcher = callback

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.generation == gen {
			g.watcher = nil
		}
	}, nil
}
