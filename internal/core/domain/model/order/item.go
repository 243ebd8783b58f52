package order

import (
	"fmt"

	"github.com/j4ckson185/apk/internal/pkg/errs"
	"github.com/j4ckson185/apk/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when attempting to use an improperly
// initialized Item. Items must be created via NewItem.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"item must be created via NewItem constructor")

// Item is a single order line: a named product, its quantity, the unit price
// and an optional free-text note.
type Item struct {
	name      string
	quantity  int
	unitPrice float64
	note      string
	guard     guard.ConstructorGuard
}

// NewItem creates a validated order line. Name is required, quantity must be
// positive and the unit price must not be negative.
func NewItem(name string, quantity int, unitPrice float64, note string) (Item, error) {
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%f is negative", unitPrice))
	}

	return Item{
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Item was properly constructed via NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Name returns the product name.
func (i Item) Name() string { return i.name }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the price of a single unit.
func (i Item) UnitPrice() float64 { return i.unitPrice }

// Note returns the optional line note.
func (i Item) Note() string { return i.note }

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() float64 {
	return float64(i.quantity) * i.unitPrice
}
