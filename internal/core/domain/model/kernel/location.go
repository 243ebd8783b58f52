package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/j4ckson185/apk/internal/pkg/errs"
	"github.com/j4ckson185/apk/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
	// A spherical model is accurate to within normal GPS noise; no ellipsoidal
	// correction is applied.
	EarthRadiusMeters = 6371000.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location represents a geographic point with validated coordinates.
// Location is an immutable value object; the zero value is invalid and fails
// validation, so instances must come from NewLocation.
//
// Example:
//
//	loc, err := kernel.NewLocation(-5.7480, -35.2560)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(loc) // Output: Location(-5.748000,-35.256000)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location from latitude and longitude in decimal degrees.
// Latitude must be within [LatitudeMin..LatitudeMax] and longitude within
// [LongitudeMin..LongitudeMax]; both bounds are inclusive.
//
// Returns:
//   - Location: a valid location instance
//   - error: validation error if either coordinate is out of bounds
func NewLocation(latitude float64, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed via NewLocation.
// The zero value of Location fails this validation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in decimal degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// String returns a human-readable representation in the format
// "Location(lat,lng)". Implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares two locations for coordinate equality.
// Both locations must be properly constructed for the comparison to succeed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// DistanceTo calculates the great-circle distance in meters between two
// locations using the haversine formula on a sphere of radius EarthRadiusMeters.
//
// The calculation is symmetric (a.DistanceTo(b) == b.DistanceTo(a)) and returns
// zero for identical coordinates. Both locations must be properly constructed.
//
// Example:
//
//	store, _ := kernel.NewLocation(-5.7480, -35.2560)
//	customer, _ := kernel.NewLocation(-5.7510, -35.2601)
//	meters, err := store.DistanceTo(customer)
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	phi1 := l.latitude * math.Pi / 180
	phi2 := other.latitude * math.Pi / 180
	deltaPhi := (other.latitude - l.latitude) * math.Pi / 180
	deltaLambda := (other.longitude - l.longitude) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c, nil
}

// setLatitude sets the latitude with range validation.
// Note: pointer receiver on a value-semantics type is intentional; the private
// setters self-encapsulate validation during construction.
func (l *Location) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	l.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
func (l *Location) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	l.longitude = longitude
	return nil
}
