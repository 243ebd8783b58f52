package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
)

// AverageSpeedKmh is the fixed average speed used to turn route distance into
// an estimated duration. This is a heuristic, not a traffic model.
const AverageSpeedKmh = 30.0

// ErrNoEligibleStops is returned when route planning is requested and no order
// qualifies (active status and geocoded address). Callers must treat this as
// "insufficient data", not as a failure.
var ErrNoEligibleStops = errors.New("no eligible stops for route planning")

// RoutePoint is one stop of a planned route: a geocoordinate, a display
// address and, for delivery stops, the order it serves. The depot carries a
// nil OrderID and is always position 0 of any planned route.
type RoutePoint struct {
	Location kernel.Location
	Address  string
	OrderID  *kernel.UUID
}

// RouteResult is a planned visiting sequence with its distance and duration
// estimates. Results are recomputed on demand from the current order snapshot
// and never persisted.
type RouteResult struct {
	// Points is the ordered visiting sequence, depot first.
	Points []RoutePoint
	// TotalDistanceMeters sums all consecutive legs, including depot to the
	// first stop.
	TotalDistanceMeters float64
	// EstimatedMinutes is the duration estimate at AverageSpeedKmh.
	EstimatedMinutes int
	// MapsURL is the external-navigation hand-off URL (origin, then each stop).
	MapsURL string
}

// RouteStats summarizes how much of an order snapshot is usable for routing.
type RouteStats struct {
	Total           int
	WithCoordinates int
	Eligible        int
}

// RoutePlanner is a domain service that produces a locally-optimized visiting
// sequence for a courier's active orders using a greedy nearest-neighbor
// heuristic.
//
// The heuristic is deliberately O(n²) and non-optimal: courier order counts
// are small and the route is recomputed on every order-set change.
//
// Example usage:
//
//	planner := services.NewRoutePlanner()
//	result, err := planner.Plan(depot, orders)
//	if errors.Is(err, services.ErrNoEligibleStops) {
//	    // nothing to route yet
//	    return
//	}
type RoutePlanner struct{}

// NewRoutePlanner creates a new RoutePlanner instance.
func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// Plan produces a route starting at the depot and visiting every eligible
// order exactly once.
//
// Eligibility: status Accepted or Dispatched, address geocoded. Orders without
// coordinates are silently excluded. With zero eligible orders Plan returns
// (nil, ErrNoEligibleStops) rather than an empty route.
//
// The visiting sequence is greedy nearest-neighbor with ties broken by input
// order (first encountered wins), so the result is deterministic for a given
// snapshot.
func (p RoutePlanner) Plan(depot RoutePoint, orders []*order.Order) (*RouteResult, error) {
	if err := depot.Location.Validate(); err != nil {
		return nil, err
	}

	stops, err := eligibleStops(orders)
	if err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, ErrNoEligibleStops
	}

	ordered, total, err := p.nearestNeighbor(depot, stops)
	if err != nil {
		return nil, err
	}

	points := append([]RoutePoint{depot}, ordered...)

	return &RouteResult{
		Points:              points,
		TotalDistanceMeters: total,
		EstimatedMinutes:    estimateMinutes(total),
		MapsURL:             mapsURL(points),
	}, nil
}

// Stats reports snapshot coverage: how many orders exist, how many carry
// coordinates and how many are eligible for routing.
func (p RoutePlanner) Stats(orders []*order.Order) RouteStats {
	stats := RouteStats{Total: len(orders)}
	for _, o := range orders {
		if o.Address().HasCoordinates() {
			stats.WithCoordinates++
			if isEligible(o) {
				stats.Eligible++
			}
		}
	}
	return stats
}

// HasEligibleStops reports whether at least one order qualifies for routing.
func (p RoutePlanner) HasEligibleStops(orders []*order.Order) bool {
	for _, o := range orders {
		if isEligible(o) && o.Address().HasCoordinates() {
			return true
		}
	}
	return false
}

// nearestNeighbor walks the unvisited set, always appending the stop closest
// to the current position. Returns the visiting order and the summed leg
// distances including the depot leg.
func (p RoutePlanner) nearestNeighbor(depot RoutePoint, stops []RoutePoint) ([]RoutePoint, float64, error) {
	var (
		ordered   = make([]RoutePoint, 0, len(stops))
		remaining = append([]RoutePoint(nil), stops...)
		current   = depot
		total     float64
	)

	for len(remaining) > 0 {
		nearestIndex := -1
		nearestDistance := math.MaxFloat64

		for i, candidate := range remaining {
			d, err := current.Location.DistanceTo(candidate.Location)
			if err != nil {
				return nil, 0, err
			}
			// Strict less keeps ties stable: first encountered wins.
			if d < nearestDistance {
				nearestDistance = d
				nearestIndex = i
			}
		}

		total += nearestDistance
		current = remaining[nearestIndex]
		ordered = append(ordered, current)
		remaining = append(remaining[:nearestIndex], remaining[nearestIndex+1:]...)
	}

	return ordered, total, nil
}

// eligibleStops converts routable orders into route points, silently skipping
// orders without coordinates.
func eligibleStops(orders []*order.Order) ([]RoutePoint, error) {
	stops := make([]RoutePoint, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if !isEligible(o) || !o.Address().HasCoordinates() {
			continue
		}

		id := o.ID()
		stops = append(stops, RoutePoint{
			Location: *o.Address().Coordinates(),
			Address:  o.Address().DisplayLine(),
			OrderID:  &id,
		})
	}
	return stops, nil
}

func isEligible(o *order.Order) bool {
	return o.Status() == order.Accepted || o.Status() == order.Dispatched
}

// estimateMinutes converts a distance to a duration at AverageSpeedKmh,
// rounded to whole minutes.
func estimateMinutes(distanceMeters float64) int {
	hours := distanceMeters / 1000 / AverageSpeedKmh
	return int(math.Round(hours * 60))
}

// mapsURL builds the external navigation URL: origin followed by every stop,
// in visiting order.
func mapsURL(points []RoutePoint) string {
	parts := make([]string, 0, len(points))
	for _, pt := range points {
		parts = append(parts, fmt.Sprintf("%f,%f", pt.Location.Latitude(), pt.Location.Longitude()))
	}
	return "https://www.google.com/maps/dir/" + strings.Join(parts, "/") + "?dir_action=navigate"
}
