// Package order contains the Order aggregate and its lifecycle state machine.
//
// Orders arrive from the remote assignment store in Sent status and advance
// monotonically through Accepted and Dispatched to the terminal Concluded
// status. Transitions that involve the external marketplace (dispatch,
// delivery-code confirmation) are orchestrated by the command handlers in
// internal/core/application/usecases/commands; the aggregate itself only
// enforces the transition contract and timestamps.
package order
