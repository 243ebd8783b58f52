package order

import (
	"fmt"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/pkg/errs"
	"github.com/j4ckson185/apk/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is the structured delivery destination of an order.
// The geocoordinate is optional: orders without one are still deliverable but
// are excluded from route planning.
type Address struct {
	street       string
	number       string
	complement   string
	neighborhood string
	city         string
	state        string
	zipCode      string
	coordinates  *kernel.Location
	guard        guard.ConstructorGuard
}

// NewAddress creates a validated Address. Street and city are required;
// complement and coordinates may be empty/nil.
func NewAddress(
	street, number, complement, neighborhood, city, state, zipCode string,
	coordinates *kernel.Location,
) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	if coordinates != nil {
		if err := coordinates.Validate(); err != nil {
			return Address{}, err
		}
	}

	return Address{
		street:       street,
		number:       number,
		complement:   complement,
		neighborhood: neighborhood,
		city:         city,
		state:        state,
		zipCode:      zipCode,
		coordinates:  coordinates,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Address was properly constructed via NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a Address) Street() string { return a.street }

// Number returns the street number.
func (a Address) Number() string { return a.number }

// Complement returns the optional address complement.
func (a Address) Complement() string { return a.complement }

// Neighborhood returns the neighborhood.
func (a Address) Neighborhood() string { return a.neighborhood }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the state.
func (a Address) State() string { return a.state }

// ZipCode returns the postal code.
func (a Address) ZipCode() string { return a.zipCode }

// Coordinates returns the optional geocoordinate of the address, or nil when
// the address was never geocoded.
func (a Address) Coordinates() *kernel.Location { return a.coordinates }

// HasCoordinates reports whether the address carries a geocoordinate and is
// therefore eligible for route planning.
func (a Address) HasCoordinates() bool { return a.coordinates != nil }

// DisplayLine renders the short form used on route points:
// "street, number - neighborhood".
func (a Address) DisplayLine() string {
	return fmt.Sprintf("%s, %s - %s", a.street, a.number, a.neighborhood)
}
