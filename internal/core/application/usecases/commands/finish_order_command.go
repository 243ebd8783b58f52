package commands

import (
	"errors"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/pkg/guard"
)

var ErrFinishOrderCommandIsNotConstructed = errors.New(
	"FinishOrderCommand must be created via NewFinishOrderCommand constructor",
)

// FinishOrderCommand represents concluding a dispatched order without the
// customer's delivery code. It exists for hand-offs where no code can be
// collected, such as leaving the package with a doorman.
type FinishOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinishOrderCommand creates a command to finish the given order without
// code verification.
func NewFinishOrderCommand(orderID kernel.UUID) (FinishOrderCommand, error) {
	cmd := FinishOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return FinishOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinishOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinishOrderCommandIsNotConstructed)
}

// OrderID returns the store-assigned identifier of the order to finish.
func (c FinishOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *FinishOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
