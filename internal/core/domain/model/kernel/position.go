package kernel

import (
	"time"

	"github.com/j4ckson185/apk/internal/pkg/errs"
	"github.com/j4ckson185/apk/internal/pkg/guard"
)

// ErrPositionIsNotConstructed is returned when attempting to use an improperly
// initialized Position. Positions must be created via NewPosition.
var ErrPositionIsNotConstructed = errs.NewValueIsRequiredError(
	"position must be created via NewPosition constructor")

// Position is a single GPS fix: a location plus the reported accuracy radius
// and the moment the fix was taken. Positions are ephemeral value objects;
// only the most recent accepted one is ever retained.
type Position struct {
	location  Location
	accuracy  float64
	timestamp time.Time
	guard     guard.ConstructorGuard
}

// NewPosition creates a Position from a validated location, an accuracy radius
// in meters (must not be negative) and the fix timestamp (must not be zero).
func NewPosition(location Location, accuracy float64, timestamp time.Time) (Position, error) {
	if err := location.Validate(); err != nil {
		return Position{}, err
	}
	if accuracy < 0 {
		return Position{}, errs.NewValueIsInvalidError("accuracy")
	}
	if timestamp.IsZero() {
		return Position{}, errs.NewValueIsRequiredError("timestamp")
	}

	return Position{
		location:  location,
		accuracy:  accuracy,
		timestamp: timestamp,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Position was properly constructed via NewPosition.
func (p Position) Validate() error {
	return p.guard.Validate(ErrPositionIsNotConstructed)
}

// Location returns the geographic point of the fix.
func (p Position) Location() Location {
	return p.location
}

// Accuracy returns the reported accuracy radius in meters.
func (p Position) Accuracy() float64 {
	return p.accuracy
}

// Timestamp returns the moment the fix was taken.
func (p Position) Timestamp() time.Time {
	return p.timestamp
}

// DistanceTo calculates the great-circle distance in meters between the
// locations of two positions.
func (p Position) DistanceTo(other Position) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := other.Validate(); err != nil {
		return 0, err
	}

	return p.location.DistanceTo(other.location)
}
