package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/j4ckson185/apk/internal/core/ports"
)

// AcceptAllOrdersCommandHandler accepts every sent order of a courier inside
// a single transaction. Either the whole batch becomes accepted or none of it
// does; a reader never observes a half-applied batch.
type AcceptAllOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.FeedPublisher
	logger     *slog.Logger
}

// NewAcceptAllOrdersCommandHandler creates a handler for batch acceptance.
func NewAcceptAllOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.FeedPublisher,
	logger *slog.Logger,
) AcceptAllOrdersCommandHandler {
	return AcceptAllOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle accepts the batch. A courier with no sent orders is a successful
// no-op, and no change notification is emitted for it.
func (h *AcceptAllOrdersCommandHandler) Handle(ctx context.Context, cmd AcceptAllOrdersCommand) error {
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
	offered, err := orderRepo.GetAllSentByCourier(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if len(offered) == 0 {
		return nil
	}

	now := time.Now()
	for _, aggregate := range offered {
		if err = aggregate.Accept(now); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("accepted all offered orders", "courier_id", cmd.CourierID(), "count", len(offered))
	notifyOrdersChanged(ctx, h.publisher, h.logger, cmd.CourierID())
	return nil
}
