package queries

import (
	"context"

	"github.com/j4ckson185/apk/internal/core/domain/services"
	"github.com/j4ckson185/apk/internal/core/ports"
)

// GetRouteQueryHandler loads the courier's active orders and plans a visiting
// sequence over them. Orders without coordinates are skipped and counted, so
// the caller can tell the courier how many stops could not be routed.
type GetRouteQueryHandler struct {
	orderRepo ports.OrderRepository
	planner   services.RoutePlanner
}

// NewGetRouteQueryHandler creates a handler for route planning.
func NewGetRouteQueryHandler(orderRepo ports.OrderRepository, planner services.RoutePlanner) GetRouteQueryHandler {
	return GetRouteQueryHandler{
		orderRepo: orderRepo,
		planner:   planner,
	}
}

// Handle plans the route. With no routable stops it returns
// services.ErrNoEligibleStops and no response.
func (h GetRouteQueryHandler) Handle(ctx context.Context, query GetRouteQuery) (*GetRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orderRepo.GetActiveByCourier(ctx, query.CourierID())
	if err != nil {
		return nil, err
	}

	depot := services.RoutePoint{Location: query.Origin(), Address: "current position"}
	result, err := h.planner.Plan(depot, orders)
	if err != nil {
		return nil, err
	}

	stats := h.planner.Stats(orders)

	resp := &GetRouteQueryResponse{
		Stops:             make([]GetRouteQueryStop, 0, len(result.Points)),
		DistanceMeters:    result.TotalDistanceMeters,
		DistanceDisplay:   services.FormatDistance(result.TotalDistanceMeters),
		EstimatedMinutes:  result.EstimatedMinutes,
		EstimatedDisplay:  services.FormatTime(result.EstimatedMinutes),
		MapsURL:           result.MapsURL,
		SkippedUngeocoded: stats.Total - stats.WithCoordinates,
	}

	for _, point := range result.Points {
		resp.Stops = append(resp.Stops, GetRouteQueryStop{
			OrderID:     point.OrderID,
			AddressLine: point.Address,
			Latitude:    point.Location.Latitude(),
			Longitude:   point.Location.Longitude(),
		})
	}

	return resp, nil
}
