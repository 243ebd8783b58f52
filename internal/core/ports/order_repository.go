// Package ports defines the boundary interfaces of the core: the remote
// assignment store, the marketplace API, the order change feed and the
// positioning source. Adapters implement them; the application layer depends
// on nothing else.
package ports

import (
	"context"
	"errors"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
)

// ErrRemoteUnavailable is the sentinel for assignment-store read/write
// failures. Adapters wrap the underlying driver error with it so the
// application layer can classify without knowing the storage technology.
var ErrRemoteUnavailable = errors.New("assignment store unavailable")

// OrderRepository is the order-side surface of the remote assignment store.
//
// The store is the sole writer of authoritative order state; every mutation
// performed here is reflected back to consumers through the change feed, not
// through return values.
type OrderRepository interface {
	// Get retrieves an order by its store-assigned id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Update persists the current state of an order. The write is
	// idempotent: replaying it after a crash is safe.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetActiveByCourier returns the courier's orders in the tracked set
	// {sent, accepted, dispatched}, ordered by creation time descending.
	GetActiveByCourier(ctx context.Context, courierID string) ([]*order.Order, error)

	// GetAllSentByCourier returns the courier's orders still in sent status,
	// used by the accept-all batch.
	GetAllSentByCourier(ctx context.Context, courierID string) ([]*order.Order, error)
}
