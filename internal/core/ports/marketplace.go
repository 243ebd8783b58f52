package ports

import (
	"context"
	"errors"
	"fmt"
)

// ErrMarketplaceRejected is the sentinel for dispatch or code-verification
// calls the marketplace refused. Use errors.As to reach the concrete
// MarketplaceRejectedError and its verbatim message.
var ErrMarketplaceRejected = errors.New("marketplace rejected the request")

// MarketplaceRejectedError carries the marketplace's own response for a
// refused call. The message is passed through verbatim when available so the
// courier sees what the marketplace actually said.
type MarketplaceRejectedError struct {
	StatusCode int
	Message    string
}

func (e *MarketplaceRejectedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("marketplace rejected the request (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("marketplace rejected the request (status %d)", e.StatusCode)
}

func (e *MarketplaceRejectedError) Unwrap() error {
	return ErrMarketplaceRejected
}

// MarketplaceClient is the two-operation surface of the external marketplace
// the lifecycle transitions must call.
//
// Both operations must complete successfully before the corresponding local
// status write happens; a failure here leaves local state untouched.
type MarketplaceClient interface {
	// DispatchOrder tells the marketplace the courier is on the way.
	// Called with the marketplace's own order id, never the store id.
	DispatchOrder(ctx context.Context, marketplaceOrderID string) error

	// VerifyDeliveryCode confirms the 4-digit hand-off code with the
	// marketplace. The code format is validated by the caller before this
	// is invoked.
	VerifyDeliveryCode(ctx context.Context, marketplaceOrderID string, code string) error
}
