package ports

import (
	"context"

	"github.com/j4ckson185/apk/internal/core/domain/model/order"
)

// OrderFeed is the push side of the remote assignment store: a live stream of
// full order snapshots for one courier, filtered to the tracked status set and
// ordered by creation time descending.
//
// The feed does not auto-reconnect; when the error channel reports a broken
// subscription, re-subscribing is the caller's responsibility.
type OrderFeed interface {
	// Subscribe establishes the live feed. The first snapshot is delivered
	// as soon as it is available. Cancelling ctx or calling Close releases
	// the subscription.
	Subscribe(ctx context.Context, courierID string) (OrderSubscription, error)
}

// OrderSubscription is an active feed subscription. Exactly one consumer
// reads it; Close must be called when the courier session ends or the feed
// leaks.
type OrderSubscription interface {
	// Snapshots delivers full order collections, each replacing the
	// previous one wholesale. The channel is closed after Close.
	Snapshots() <-chan []*order.Order

	// Errs delivers standing feed errors. A message here means the feed is
	// broken; it is not a transient warning.
	Errs() <-chan error

	// Close releases the subscription synchronously: no snapshot or error
	// is delivered after it returns. Close is idempotent.
	Close() error
}

// FeedPublisher is the write-side hook adapters call after committing a
// mutation, so subscribed feeds pick the change up.
type FeedPublisher interface {
	// OrdersChanged signals that the courier's order collection changed.
	OrdersChanged(ctx context.Context, courierID string) error
}
