package commands

import (
	"errors"

	"github.com/j4ckson185/apk/internal/pkg/guard"
)

var (
	ErrAcceptAllOrdersCommandIsNotConstructed = errors.New(
		"AcceptAllOrdersCommand must be created via NewAcceptAllOrdersCommand constructor",
	)
	ErrCourierIDIsRequired = errors.New("courier id is required")
)

// AcceptAllOrdersCommand represents a courier accepting every order currently
// offered to them in one atomic batch.
type AcceptAllOrdersCommand struct { //nolint:recvcheck //using for validation
	courierID string

	guard guard.ConstructorGuard
}

// NewAcceptAllOrdersCommand creates a command to accept all of the courier's
// sent orders.
func NewAcceptAllOrdersCommand(courierID string) (AcceptAllOrdersCommand, error) {
	cmd := AcceptAllOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return AcceptAllOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAllOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAllOrdersCommandIsNotConstructed)
}

// CourierID returns the courier whose offers are being accepted.
func (c AcceptAllOrdersCommand) CourierID() string {
	return c.courierID
}

func (c *AcceptAllOrdersCommand) setCourierID(courierID string) error {
	if courierID == "" {
		return ErrCourierIDIsRequired
	}

	c.courierID = courierID
	return nil
}
