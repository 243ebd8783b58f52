package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order represents a delivery assignment for one courier. It is the aggregate
// root that pushes the order through the strict lifecycle
// sent -> accepted -> dispatched -> concluded.
//
// Invariants:
//   - The store-assigned id (distinct from the marketplace's own order id)
//     is valid and immutable
//   - Status transitions are monotonic; no method ever rolls an order back
//   - Every transition stamps updatedAt; accept and conclude additionally
//     stamp acceptedAt / finishedAt
//   - Instances can only be created through NewOrder or RestoreOrder
//
// The remote assignment store is the sole writer of authoritative state; a
// local Order is a projection that is replaced wholesale on every push, never
// patched in place.
type Order struct {
	// id is the store-assigned identifier of the assignment document
	id kernel.UUID

	// marketplaceID is the marketplace's own order id, used for dispatch and
	// delivery-code verification calls
	marketplaceID string

	// courierID identifies the courier the order is assigned to
	courierID string

	customerName  string
	customerPhone string
	address       Address
	items         []Item
	paymentMethod string
	total         float64
	note          string

	status Status

	createdAt  time.Time
	updatedAt  time.Time
	acceptedAt *time.Time
	finishedAt *time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a freshly arrived assignment in Sent status.
//
// Parameters:
//   - id: store-assigned identifier (must be a valid UUID)
//   - marketplaceID: the marketplace's own order id (required)
//   - courierID: the courier the order is assigned to (required)
//   - customerName: recipient name (required)
//   - address: validated delivery address
//   - items: order lines (each must be constructed via NewItem)
//   - total: total amount (must not be negative)
//   - createdAt: arrival timestamp (must not be zero)
//
// The new order starts in Sent status with updatedAt == createdAt.
func NewOrder(
	id kernel.UUID,
	marketplaceID string,
	courierID string,
	customerName string,
	address Address,
	items []Item,
	total float64,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Sent,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setMarketplaceID(marketplaceID),
		o.setCourierID(courierID),
		o.setCustomerName(customerName),
		o.setAddress(address),
		o.setItems(items),
		o.setTotal(total),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.updatedAt = o.createdAt
	return o, nil
}

// RestoreOrder reconstructs an order from persistence without replaying
// transitions. The status is taken as-is after validation; timestamps are
// restored verbatim. Intended for repository and feed adapters only.
func RestoreOrder(
	id kernel.UUID,
	marketplaceID string,
	courierID string,
	customerName string,
	customerPhone string,
	address Address,
	items []Item,
	paymentMethod string,
	total float64,
	note string,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	acceptedAt *time.Time,
	finishedAt *time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", err)
	}

	o := &Order{
		status:        status,
		customerPhone: customerPhone,
		paymentMethod: paymentMethod,
		note:          note,
		acceptedAt:    acceptedAt,
		finishedAt:    finishedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setMarketplaceID(marketplaceID),
		o.setCourierID(courierID),
		o.setCustomerName(customerName),
		o.setAddress(address),
		o.setItems(items),
		o.setTotal(total),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if updatedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("updatedAt")
	}
	o.updatedAt = updatedAt

	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their store-assigned identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the store-assigned identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// MarketplaceID returns the marketplace's own order id.
func (o *Order) MarketplaceID() string { return o.marketplaceID }

// CourierID returns the courier the order is assigned to.
func (o *Order) CourierID() string { return o.courierID }

// CustomerName returns the recipient name.
func (o *Order) CustomerName() string { return o.customerName }

// CustomerPhone returns the optional recipient phone.
func (o *Order) CustomerPhone() string { return o.customerPhone }

// Address returns the delivery address.
func (o *Order) Address() Address { return o.address }

// Items returns the order lines.
func (o *Order) Items() []Item { return o.items }

// PaymentMethod returns the payment method label.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// Total returns the total amount.
func (o *Order) Total() float64 { return o.total }

// Note returns the optional free-text note.
func (o *Order) Note() string { return o.note }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CreatedAt returns the arrival timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// AcceptedAt returns when the order was accepted, or nil.
func (o *Order) AcceptedAt() *time.Time { return o.acceptedAt }

// FinishedAt returns when the order was concluded, or nil.
func (o *Order) FinishedAt() *time.Time { return o.finishedAt }

// IsActive reports whether the order belongs to the courier's tracked set
// {Sent, Accepted, Dispatched}.
func (o *Order) IsActive() bool {
	return o.status.IsActive()
}

// Accept transitions the order from Sent to Accepted and stamps updatedAt and
// acceptedAt. Returns an error wrapping ErrInvalidTransition when the order is
// in any other status; the order is left untouched on failure.
func (o *Order) Accept(now time.Time) error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	o.acceptedAt = &now
	return nil
}

// Dispatch transitions the order from Accepted to Dispatched and stamps
// updatedAt. Callers must have completed the marketplace dispatch call before
// invoking this; the domain transition is the second step of the two-phase
// sequence.
func (o *Order) Dispatch(now time.Time) error {
	newStatus, err := o.status.Dispatch()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Conclude transitions the order from Dispatched to Concluded and stamps
// updatedAt and finishedAt. Concluded is final: the order drops out of the
// courier's active snapshot.
func (o *Order) Conclude(now time.Time) error {
	newStatus, err := o.status.Conclude()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	o.finishedAt = &now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setMarketplaceID(marketplaceID string) error {
	if marketplaceID == "" {
		return errs.NewValueIsRequiredError("marketplaceID")
	}
	o.marketplaceID = marketplaceID
	return nil
}

func (o *Order) setCourierID(courierID string) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courierID")
	}
	o.courierID = courierID
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.items = items
	return nil
}

func (o *Order) setTotal(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%f is negative", total))
	}
	o.total = total
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
