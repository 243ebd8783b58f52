package order

import (
	"errors"
	"fmt"
)

// Status represents the lifecycle state of a delivery order.
// It implements a strictly monotonic state machine; no transition ever moves
// an order back to an earlier status.
//
// State transitions:
//
//	Sent ──> Accepted ──> Dispatched ──> Concluded
//
// String values double as the persistence representation in the assignment
// store, so they must stay stable.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Sent is the initial status: the order has been pushed to the courier
	// and is waiting to be accepted.
	Sent

	// Accepted indicates the courier has taken the order.
	Accepted

	// Dispatched indicates the courier is on the way to the customer.
	// Entering this status requires a successful marketplace dispatch call.
	Dispatched

	// Concluded indicates the order has been delivered. This is a final
	// state; concluded orders leave the courier's active snapshot.
	Concluded
)

// ErrInvalidTransition is the sentinel for status precondition violations.
// Use errors.Is to classify; the concrete InvalidTransitionError carries
// the offending statuses.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports an attempt to move an order out of a status
// that does not permit the requested transition.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// statusStrings maps Status values to their persistence representation.
func statusStrings() map[Status]string {
	return map[Status]string{
		Sent:       "sent",
		Accepted:   "accepted",
		Dispatched: "dispatched",
		Concluded:  "concluded",
	}
}

// StatusFromString parses the persistence representation of a status.
// Returns an error for anything outside the closed status set.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%q is not a valid status", s)
}

// Validate checks if the Status value is one of the closed set
// {Sent, Accepted, Dispatched, Concluded}. Unknown is invalid.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok {
		return fmt.Errorf("%d is not a valid status", s)
	}
	return nil
}

// String returns the persistence representation of the status, or "unknown"
// for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether the status belongs to the tracked set
// {Sent, Accepted, Dispatched}. Concluded orders drop out of the courier's
// live snapshot.
func (s Status) IsActive() bool {
	return s == Sent || s == Accepted || s == Dispatched
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Sent -> Accepted
//
// Returns (Unknown, *InvalidTransitionError) for any other source status.
func (s Status) Accept() (Status, error) {
	if s != Sent {
		return Unknown, &InvalidTransitionError{From: s, To: Accepted}
	}
	return Accepted, nil
}

// Dispatch transitions the status to Dispatched.
//
// Valid transitions:
//   - Accepted -> Dispatched
//
// Returns (Unknown, *InvalidTransitionError) for any other source status.
func (s Status) Dispatch() (Status, error) {
	if s != Accepted {
		return Unknown, &InvalidTransitionError{From: s, To: Dispatched}
	}
	return Dispatched, nil
}

// Conclude transitions the status to Concluded.
//
// Valid transitions:
//   - Dispatched -> Concluded
//
// Returns (Unknown, *InvalidTransitionError) for any other source status.
// Concluded is final; no further transitions are possible.
func (s Status) Conclude() (Status, error) {
	if s != Dispatched {
		return Unknown, &InvalidTransitionError{From: s, To: Concluded}
	}
	return Concluded, nil
}
