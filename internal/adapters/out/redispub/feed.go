package redispub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/j4ckson185/apk/internal/core/domain/model/order"
	"github.com/j4ckson185/apk/internal/core/ports"
)

// Feed implements ports.OrderFeed: it listens for change signals on the
// courier's Redis channel and answers each one with a fresh full snapshot
// read from the assignment store.
//
// The feed never reconnects by itself. A broken pub/sub connection surfaces
// on the subscription's error channel and the owner decides when to
// subscribe again.
type Feed struct {
	client *redis.Client
	orders ports.OrderRepository
	logger *slog.Logger
}

// NewFeed creates a feed over an established Redis client and the order side
// of the store.
func NewFeed(client *redis.Client, orders ports.OrderRepository, logger *slog.Logger) *Feed {
	return &Feed{
		client: client,
		orders: orders,
		logger: logger.With("component", "order_feed"),
	}
}

// Subscribe establishes the live feed for one courier. The initial snapshot
// is loaded immediately, before any change signal arrives.
func (f *Feed) Subscribe(ctx context.Context, courierID string) (ports.OrderSubscription, error) {
	pubsub := f.client.Subscribe(ctx, channelFor(courierID))

	// Confirm the server accepted the subscription before reporting success.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribing to channel %s: %w", channelFor(courierID), err)
	}

	sub := &subscription{
		snapshots: make(chan []*order.Order, 1),
		errs:      make(chan error, 1),
		quit:      make(chan struct{}),
		finished:  make(chan struct{}),
		pubsub:    pubsub,
	}

	go sub.run(ctx, f, courierID)
	return sub, nil
}

// subscription is one active courier feed.
type subscription struct {
	snapshots chan []*order.Order
	errs      chan error
	quit      chan struct{}
	finished  chan struct{}
	pubsub    *redis.PubSub
	closeOnce sync.Once
}

func (s *subscription) Snapshots() <-chan []*order.Order { return s.snapshots }

func (s *subscription) Errs() <-chan error { return s.errs }

// Close releases the subscription. It blocks until the delivery goroutine has
// stopped, so no snapshot or error arrives after it returns.
func (s *subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.quit)
		err = s.pubsub.Close()
		<-s.finished
	})
	return err
}

func (s *subscription) run(ctx context.Context, feed *Feed, courierID string) {
	defer close(s.finished)
	defer close(s.snapshots)

	if !s.reload(ctx, feed, courierID) {
		return
	}

	msgs := s.pubsub.Channel()
	for {
		select {
		case <-s.quit:
			return
		case <-ctx.Done():
			s.fail(ctx.Err())
			return
		case _, ok := <-msgs:
			if !ok {
				// The pub/sub connection is gone; closed locally or broken.
				select {
				case <-s.quit:
				default:
					s.fail(fmt.Errorf("feed connection lost for courier %s", courierID))
				}
				return
			}
			if !s.reload(ctx, feed, courierID) {
				return
			}
		}
	}
}

// reload reads a fresh snapshot from the store and publishes it, displacing
// an unread one. Returns false when the subscription should stop.
func (s *subscription) reload(ctx context.Context, feed *Feed, courierID string) bool {
	snapshot, err := feed.orders.GetActiveByCourier(ctx, courierID)
	if err != nil {
		feed.logger.Error("snapshot reload failed", "courier_id", courierID, "error", err)
		s.fail(err)
		return false
	}

	for {
		select {
		case <-s.quit:
			return false
		case s.snapshots <- snapshot:
			return true
		default:
			select {
			case <-s.snapshots:
			default:
			}
		}
	}
}

func (s *subscription) fail(err error) {
	select {
	case s.errs <- err:
	default:
	}
}
