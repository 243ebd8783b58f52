package queries

import (
	"errors"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/pkg/guard"
)

var ErrGetRouteQueryIsNotConstructed = errors.New(
	"GetRouteQuery must be created via NewGetRouteQuery constructor",
)

// GetRouteQuery plans a visiting sequence over the courier's routable orders,
// starting from the courier's current position.
type GetRouteQuery struct {
	courierID string
	origin    kernel.Location

	guard guard.ConstructorGuard
}

// NewGetRouteQuery creates a route query anchored at the given origin.
func NewGetRouteQuery(courierID string, origin kernel.Location) (GetRouteQuery, error) {
	if courierID == "" {
		return GetRouteQuery{}, ErrCourierIDIsRequired
	}
	if err := origin.Validate(); err != nil {
		return GetRouteQuery{}, err
	}

	return GetRouteQuery{
		courierID: courierID,
		origin:    origin,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteQueryIsNotConstructed)
}

// CourierID returns the courier being routed.
func (q GetRouteQuery) CourierID() string {
	return q.courierID
}

// Origin returns the route starting point.
func (q GetRouteQuery) Origin() kernel.Location {
	return q.origin
}

// GetRouteQueryStop is one stop of the planned sequence.
type GetRouteQueryStop struct {
	OrderID     *kernel.UUID
	AddressLine string
	Latitude    float64
	Longitude   float64
}

// GetRouteQueryResponse carries the planned sequence and its human-readable
// distance and duration estimates.
type GetRouteQueryResponse struct {
	Stops             []GetRouteQueryStop
	DistanceMeters    float64
	DistanceDisplay   string
	EstimatedMinutes  int
	EstimatedDisplay  string
	MapsURL           string
	SkippedUngeocoded int
}
