package ports

import (
	"context"

	"github.com/j4ckson185/apk/internal/core/domain/model/courier"
)

// CourierLocationRepository persists the single last-reported position per
// courier in the remote store. Upsert overwrites the previous report; there is
// no history.
type CourierLocationRepository interface {
	// Upsert writes the report, replacing any existing one for the courier.
	Upsert(ctx context.Context, aggregate *courier.CourierLocation) error

	// Get returns the courier's last report, or an errs.ObjectNotFoundError
	// when the courier has never reported.
	Get(ctx context.Context, courierID string) (*courier.CourierLocation, error)
}
