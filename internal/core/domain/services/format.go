package services

import (
	"fmt"
	"math"
)

// FormatDistance renders a distance for display: whole meters below one
// kilometer, kilometers to one decimal at or above it.
//
//	FormatDistance(850)  == "850m"
//	FormatDistance(1500) == "1.5km"
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// FormatTime renders a duration in minutes for display: plain minutes below
// an hour, hours plus minutes at or above it.
//
//	FormatTime(45)  == "45min"
//	FormatTime(125) == "2h 5min"
func FormatTime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
}
