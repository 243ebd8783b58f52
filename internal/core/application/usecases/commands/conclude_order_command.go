package commands

import (
	"errors"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
	"github.com/j4ckson185/apk/internal/pkg/guard"
)

var ErrConcludeOrderCommandIsNotConstructed = errors.New(
	"ConcludeOrderCommand must be created via NewConcludeOrderCommand constructor",
)

// ConcludeOrderCommand represents finishing a delivery with the customer's
// hand-off code. The code format is validated here, before any network call:
// a malformed code never reaches the marketplace.
type ConcludeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	code    order.DeliveryCode

	guard guard.ConstructorGuard
}

// NewConcludeOrderCommand creates a command to conclude the given order with
// the provided delivery code. Returns order.ErrInvalidDeliveryCode when the
// code is not exactly four digits.
func NewConcludeOrderCommand(orderID kernel.UUID, code string) (ConcludeOrderCommand, error) {
	cmd := ConcludeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
	); err != nil {
		return ConcludeOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConcludeOrderCommand) Validate() error {
	return c.guard.Validate(ErrConcludeOrderCommandIsNotConstructed)
}

// OrderID returns the store-assigned identifier of the order to conclude.
func (c ConcludeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Code returns the validated four-digit delivery code.
func (c ConcludeOrderCommand) Code() order.DeliveryCode {
	return c.code
}

func (c *ConcludeOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConcludeOrderCommand) setCode(code string) error {
	deliveryCode, err := order.NewDeliveryCode(code)
	if err != nil {
		return err
	}

	c.code = deliveryCode
	return nil
}
