package http

import "time"

// Error is the uniform error body every endpoint returns on failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderSummary is one row in the active order listing.
type OrderSummary struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	AddressLine  string    `json:"addressLine"`
	Status       string    `json:"status"`
	Total        float64   `json:"total"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ConcludeOrderRequest carries the 4-digit hand-off code.
type ConcludeOrderRequest struct {
	Code string `json:"code"`
}

// ReportLocationRequest is a single GPS fix from the courier's device.
// ReportedAt is optional; the server clock is used when it is absent.
type ReportLocationRequest struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy"`
	ReportedAt time.Time `json:"reportedAt"`
}

// RouteStop is one point of the planned visiting sequence. OrderID is nil for
// the origin stop.
type RouteStop struct {
	OrderID     *string `json:"orderId,omitempty"`
	AddressLine string  `json:"addressLine"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Route is the planned sequence plus display-ready totals.
type Route struct {
	Stops             []RouteStop `json:"stops"`
	DistanceMeters    float64     `json:"distanceMeters"`
	DistanceDisplay   string      `json:"distanceDisplay"`
	EstimatedMinutes  int         `json:"estimatedMinutes"`
	EstimatedDisplay  string      `json:"estimatedDisplay"`
	MapsURL           string      `json:"mapsUrl"`
	SkippedUngeocoded int         `json:"skippedUngeocoded"`
}

// ReportRow is one day of the completed orders report.
type ReportRow struct {
	Day         string  `json:"day"`
	TotalOrders int     `json:"totalOrders"`
	TotalValue  float64 `json:"totalValue"`
}
