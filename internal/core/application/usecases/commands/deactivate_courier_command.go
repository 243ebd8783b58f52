package commands

import (
	"errors"

	"github.com/j4ckson185/apk/internal/pkg/guard"
)

var ErrDeactivateCourierCommandIsNotConstructed = errors.New(
	"DeactivateCourierCommand must be created via NewDeactivateCourierCommand constructor",
)

// DeactivateCourierCommand represents a courier going off shift: their
// position row is flagged inactive so dispatch staff stop seeing them as
// available. The last position itself is kept.
type DeactivateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID string

	guard guard.ConstructorGuard
}

// NewDeactivateCourierCommand creates a command to mark the courier inactive.
func NewDeactivateCourierCommand(courierID string) (DeactivateCourierCommand, error) {
	cmd := DeactivateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return DeactivateCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivateCourierCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateCourierCommandIsNotConstructed)
}

// CourierID returns the courier going off shift.
func (c DeactivateCourierCommand) CourierID() string {
	return c.courierID
}

func (c *DeactivateCourierCommand) setCourierID(courierID string) error {
	if courierID == "" {
		return ErrCourierIDIsRequired
	}

	c.courierID = courierID
	return nil
}
