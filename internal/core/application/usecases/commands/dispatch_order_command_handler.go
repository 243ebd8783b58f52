package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/j4ckson185/apk/internal/core/ports"
)

// DispatchOrderCommandHandler marks an accepted order as out for delivery.
//
// The marketplace is told first; only after it acknowledges does the local
// status change to dispatched. If the marketplace call fails, the order stays
// accepted and no write happens.
type DispatchOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	marketplace ports.MarketplaceClient
	publisher   ports.FeedPublisher
	logger      *slog.Logger
}

// NewDispatchOrderCommandHandler creates a handler for order dispatch.
func NewDispatchOrderCommandHandler(
	uowFactory OrderUoWFactory,
	marketplace ports.MarketplaceClient,
	publisher ports.FeedPublisher,
	logger *slog.Logger,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory:  uowFactory,
		marketplace: marketplace,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle processes the dispatch in marketplace-then-store order. No
// transaction is held across the marketplace call: the order is read first,
// the write runs in its own transaction afterwards.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := readOrder(ctx, h.uowFactory, cmd.OrderID())
	if err != nil {
		return err
	}

	// The transition guard runs before the marketplace call: an order that
	// is not accepted fails here without any network traffic.
	if err = aggregate.Dispatch(time.Now()); err != nil {
		return err
	}

	if err = h.marketplace.DispatchOrder(ctx, aggregate.MarketplaceID()); err != nil {
		return err
	}

	// The marketplace already considers the order dispatched, so the local
	// write replays on store outages rather than being abandoned.
	if err = persistOrderWithReplay(ctx, h.uowFactory, aggregate, h.logger); err != nil {
		return err
	}

	notifyOrdersChanged(ctx, h.publisher, h.logger, aggregate.CourierID())
	return nil
}
