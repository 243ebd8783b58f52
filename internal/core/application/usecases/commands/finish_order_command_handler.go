package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/j4ckson185/apk/internal/core/ports"
)

// FinishOrderCommandHandler concludes a dispatched order while skipping code
// verification entirely: no marketplace call happens. Every use is logged so
// the bypass leaves a trace.
type FinishOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.FeedPublisher
	logger     *slog.Logger
}

// NewFinishOrderCommandHandler creates a handler for codeless conclusion.
func NewFinishOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.FeedPublisher,
	logger *slog.Logger,
) FinishOrderCommandHandler {
	return FinishOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the codeless conclusion. The same dispatched-to-concluded
// transition rules apply as for the verified path.
func (h *FinishOrderCommandHandler) Handle(ctx context.Context, cmd FinishOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := readOrder(ctx, h.uowFactory, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Conclude(time.Now()); err != nil {
		return err
	}

	if err = persistOrderWithReplay(ctx, h.uowFactory, aggregate, h.logger); err != nil {
		return err
	}

	h.logger.Warn("order finished without delivery code",
		"order_id", aggregate.ID().String(),
		"courier_id", aggregate.CourierID(),
	)

	notifyOrdersChanged(ctx, h.publisher, h.logger, aggregate.CourierID())
	return nil
}
