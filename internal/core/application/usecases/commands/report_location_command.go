package commands

import (
	"errors"
	"time"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/pkg/errs"
	"github.com/j4ckson185/apk/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand represents publishing the courier's current position
// to the shared store, where dispatch staff can see it.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	courierID  string
	location   kernel.Location
	reportedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command to report the courier position
// observed at reportedAt.
func NewReportLocationCommand(courierID string, location kernel.Location, reportedAt time.Time) (ReportLocationCommand, error) {
	cmd := ReportLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setLocation(location),
		cmd.setReportedAt(reportedAt),
	); err != nil {
		return ReportLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// CourierID returns the reporting courier.
func (c ReportLocationCommand) CourierID() string {
	return c.courierID
}

// Location returns the reported position.
func (c ReportLocationCommand) Location() kernel.Location {
	return c.location
}

// ReportedAt returns when the position was observed.
func (c ReportLocationCommand) ReportedAt() time.Time {
	return c.reportedAt
}

func (c *ReportLocationCommand) setCourierID(courierID string) error {
	if courierID == "" {
		return ErrCourierIDIsRequired
	}

	c.courierID = courierID
	return nil
}

func (c *ReportLocationCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *ReportLocationCommand) setReportedAt(reportedAt time.Time) error {
	if reportedAt.IsZero() {
		return errs.NewValueIsRequiredError("reportedAt")
	}

	c.reportedAt = reportedAt
	return nil
}
