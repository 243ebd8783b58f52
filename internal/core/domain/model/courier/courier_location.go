package courier

import (
	"errors"
	"time"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/pkg/errs"
)

// ErrCourierLocationIsNotConstructed is returned when a CourierLocation was
// not created through NewCourierLocation.
var ErrCourierLocationIsNotConstructed = errors.New(
	"CourierLocation must be created via NewCourierLocation constructor")

// CourierLocation is the last position a courier reported to the remote store.
// Exactly one document exists per courier; writing a new position overwrites
// the previous one. The significant-change filter in the tracking layer bounds
// how often this is written.
type CourierLocation struct {
	courierID  string
	location   kernel.Location
	reportedAt time.Time
	active     bool

	isConstructed bool
}

// NewCourierLocation creates an active location report for a courier.
func NewCourierLocation(courierID string, location kernel.Location, reportedAt time.Time) (*CourierLocation, error) {
	if courierID == "" {
		return nil, errs.NewValueIsRequiredError("courierID")
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}
	if reportedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("reportedAt")
	}

	return &CourierLocation{
		courierID:     courierID,
		location:      location,
		reportedAt:    reportedAt,
		active:        true,
		isConstructed: true,
	}, nil
}

// RestoreCourierLocation reconstructs a location report from persistence.
func RestoreCourierLocation(
	courierID string, location kernel.Location, reportedAt time.Time, active bool,
) (*CourierLocation, error) {
	cl, err := NewCourierLocation(courierID, location, reportedAt)
	if err != nil {
		return nil, err
	}
	cl.active = active
	return cl, nil
}

// Validate ensures the CourierLocation was constructed properly.
func (c *CourierLocation) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierLocationIsNotConstructed
	}
	return nil
}

// CourierID returns the courier this report belongs to.
func (c *CourierLocation) CourierID() string { return c.courierID }

// Location returns the reported position.
func (c *CourierLocation) Location() kernel.Location { return c.location }

// ReportedAt returns when the position was reported.
func (c *CourierLocation) ReportedAt() time.Time { return c.reportedAt }

// Active reports whether the courier session is live.
func (c *CourierLocation) Active() bool { return c.active }

// Deactivate marks the courier session as ended. The location is retained so
// dashboards can show the last known position.
func (c *CourierLocation) Deactivate(now time.Time) {
	c.active = false
	c.reportedAt = now
}
