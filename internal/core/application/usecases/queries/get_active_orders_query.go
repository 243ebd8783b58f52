// Package queries contains the read-side operations of the courier app.
// Handlers read the store directly and return flat response structs shaped
// for presentation, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
	ErrCourierIDIsRequired = errors.New("courier id is required")
)

// GetActiveOrdersQuery retrieves the courier's tracked orders, meaning
// everything in sent, accepted or dispatched status.
type GetActiveOrdersQuery struct {
	courierID string

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for the courier's active workload.
func NewGetActiveOrdersQuery(courierID string) (GetActiveOrdersQuery, error) {
	if courierID == "" {
		return GetActiveOrdersQuery{}, ErrCourierIDIsRequired
	}

	return GetActiveOrdersQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// CourierID returns the courier whose workload is requested.
func (q GetActiveOrdersQuery) CourierID() string {
	return q.courierID
}

// GetActiveOrdersQueryResponse is one active order, newest first in the
// result set.
type GetActiveOrdersQueryResponse struct {
	ID           kernel.UUID
	CustomerName string
	AddressLine  string
	Status       string
	Total        float64
	CreatedAt    time.Time
}
