// Package sync keeps an in-memory mirror of a courier's active orders in step
// with the authoritative store, surfacing full snapshots and new-arrival
// alerts as they happen.
package sync

import (
	"context"
	"log/slog"
	"sync"

	"github.com/j4ckson185/apk/internal/core/domain/model/order"
	"github.com/j4ckson185/apk/internal/core/ports"
)

// Coordinator consumes an order feed subscription and turns it into a local
// replica. Each incoming snapshot replaces the retained set wholesale, so the
// replica never drifts from the store.
//
// An arrival is reported when a snapshot carries orders in the sent status
// whose ids were absent from the previous snapshot, and the previous snapshot
// was non-empty. The very first snapshot after Subscribe therefore never
// produces an arrival, even when it already contains sent orders.
//
// The coordinator does not resubscribe on its own: when the feed fails, the
// error is surfaced on Errs and the owner decides whether to Subscribe again.
type Coordinator struct {
	feed   ports.OrderFeed
	logger *slog.Logger

	snapshots chan []*order.Order
	arrivals  chan int
	errs      chan error

	// mu guards the subscription lifecycle, stateMu the retained replica.
	// They are distinct so Close can wait for the consume goroutine, which
	// takes stateMu on every snapshot, without deadlocking.
	mu   sync.Mutex
	sub  ports.OrderSubscription
	done chan struct{}

	stateMu  sync.Mutex
	retained []*order.Order
}

// NewCoordinator creates a coordinator over the given feed.
func NewCoordinator(feed ports.OrderFeed, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		feed:      feed,
		logger:    logger.With("component", "sync_coordinator"),
		snapshots: make(chan []*order.Order, 1),
		arrivals:  make(chan int, 1),
		errs:      make(chan error, 1),
	}
}

// Subscribe opens the feed for the given courier and starts mirroring it.
// Any previous subscription is released first.
func (c *Coordinator) Subscribe(ctx context.Context, courierID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub != nil {
		if err := c.sub.Close(); err != nil {
			c.logger.Warn("closing previous subscription", "error", err)
		}
		<-c.done
	}

	sub, err := c.feed.Subscribe(ctx, courierID)
	if err != nil {
		return err
	}

	c.sub = sub
	c.done = make(chan struct{})
	go c.consume(sub, c.done)

	c.logger.Info("subscribed", "courier_id", courierID)
	return nil
}

// Snapshots emits the courier's current order set after every change. A slow
// reader only ever observes the latest snapshot; intermediate ones are
// replaced, not queued.
func (c *Coordinator) Snapshots() <-chan []*order.Order {
	return c.snapshots
}

// Arrivals emits the count of newly arrived sent orders per snapshot.
func (c *Coordinator) Arrivals() <-chan int {
	return c.arrivals
}

// Errs surfaces feed failures. The subscription is dead once an error is
// emitted here.
func (c *Coordinator) Errs() <-chan error {
	return c.errs
}

// Snapshot returns the most recently retained order set.
func (c *Coordinator) Snapshot() []*order.Order {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	out := make([]*order.Order, len(c.retained))
	copy(out, c.retained)
	return out
}

// Close releases the active subscription. Safe to call multiple times; after
// it returns, no further snapshots or arrivals are delivered.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub == nil {
		return nil
	}
	err := c.sub.Close()
	<-c.done
	c.sub = nil
	c.done = nil
	return err
}

// consume mirrors the subscription until its snapshot channel closes.
func (c *Coordinator) consume(sub ports.OrderSubscription, done chan struct{}) {
	defer close(done)

	prevIDs := make(map[string]struct{})
	prevNonEmpty := false
	errsCh := sub.Errs()

	for {
		select {
		case snapshot, ok := <-sub.Snapshots():
			if !ok {
				return
			}
			c.apply(snapshot, prevIDs, prevNonEmpty)

			prevIDs = make(map[string]struct{}, len(snapshot))
			for _, o := range snapshot {
				prevIDs[o.ID().String()] = struct{}{}
			}
			prevNonEmpty = len(snapshot) > 0
		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			c.logger.Error("feed failure", "error", err)
			emitLatest(c.errs, err)
		}
	}
}

// apply retains the snapshot and publishes it, together with an arrival alert
// when new sent orders showed up.
func (c *Coordinator) apply(snapshot []*order.Order, prevIDs map[string]struct{}, prevNonEmpty bool) {
	newSent := 0
	for _, o := range snapshot {
		if o.Status() != order.Sent {
			continue
		}
		if _, seen := prevIDs[o.ID().String()]; !seen {
			newSent++
		}
	}

	c.stateMu.Lock()
	c.retained = snapshot
	c.stateMu.Unlock()

	emitLatest(c.snapshots, snapshot)
	if prevNonEmpty && newSent > 0 {
		c.logger.Info("new orders arrived", "count", newSent)
		emitLatest(c.arrivals, newSent)
	}
}

// emitLatest delivers v on a buffered channel, displacing an unread value so
// the reader always sees the freshest one.
func emitLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
