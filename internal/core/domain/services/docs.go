// Package services contains stateless domain services that operate across
// aggregates: route planning over a courier's active orders and the display
// formatting helpers for distance and duration.
package services
