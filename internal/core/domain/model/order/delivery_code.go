package order

import (
	"errors"
	"fmt"
)

// DeliveryCodeLength is the exact number of digits a delivery confirmation
// code carries.
const DeliveryCodeLength = 4

// ErrInvalidDeliveryCode is the sentinel for malformed delivery codes.
// The format is checked before any network call is made, so a malformed code
// never reaches the marketplace.
var ErrInvalidDeliveryCode = errors.New("invalid delivery code")

// DeliveryCode is the 4-digit confirmation code the customer reads to the
// courier at hand-off.
type DeliveryCode struct {
	value string
}

// NewDeliveryCode validates the code format: exactly DeliveryCodeLength ASCII
// digits. Returns an error wrapping ErrInvalidDeliveryCode otherwise.
func NewDeliveryCode(value string) (DeliveryCode, error) {
	if len(value) != DeliveryCodeLength {
		return DeliveryCode{}, fmt.Errorf("%w: must be exactly %d digits", ErrInvalidDeliveryCode, DeliveryCodeLength)
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return DeliveryCode{}, fmt.Errorf("%w: must contain only digits", ErrInvalidDeliveryCode)
		}
	}
	return DeliveryCode{value: value}, nil
}

// String returns the code digits.
func (c DeliveryCode) String() string {
	return c.value
}

// Validate checks that the code was created via NewDeliveryCode.
func (c DeliveryCode) Validate() error {
	if c.value == "" {
		return ErrInvalidDeliveryCode
	}
	return nil
}
