package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/j4ckson185/apk/internal/core/ports"
)

// AcceptOrderCommandHandler moves an offered order from sent to accepted and
// stamps the acceptance time.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewAcceptOrderCommand(orderID)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order acceptance failed: %w", err)
//	}
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.FeedPublisher
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.FeedPublisher,
	logger *slog.Logger,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the acceptance. The status transition is enforced by the
// order aggregate; accepting anything but a sent order fails without a write.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Accept(time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyOrdersChanged(ctx, h.publisher, h.logger, aggregate.CourierID())
	return nil
}

// notifyOrdersChanged tells the change feed that the courier's order set
// moved. The mutation is already committed, so a notification failure is
// logged and swallowed; subscribers converge on the next change.
func notifyOrdersChanged(ctx context.Context, publisher ports.FeedPublisher, logger *slog.Logger, courierID string) {
	if publisher == nil {
		return
	}
	if err := publisher.OrdersChanged(ctx, courierID); err != nil {
		logger.Warn("change feed notification failed", "courier_id", courierID, "error", err)
	}
}
