package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
	"github.com/j4ckson185/apk/internal/core/ports"
)

// storeWriteBackoff shapes the replay of a local status write whose
// marketplace side already succeeded. At that point the transition happened
// in the real world, so the write is retried rather than abandoned.
func storeWriteBackoff() retry.Backoff {
	b := retry.NewExponential(200 * time.Millisecond)
	return retry.WithMaxRetries(4, b)
}

// ConcludeOrderCommandHandler finishes a dispatched order using the
// customer's delivery code.
//
// Sequence: the code format was already validated by the command constructor,
// the status transition is checked next, then the marketplace verifies the
// code, and only then is the concluded status persisted. The local write is
// idempotent and is replayed on store outages, because the marketplace side
// of the hand-off is already done.
type ConcludeOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	marketplace ports.MarketplaceClient
	publisher   ports.FeedPublisher
	logger      *slog.Logger
}

// NewConcludeOrderCommandHandler creates a handler for code-verified order
// conclusion.
func NewConcludeOrderCommandHandler(
	uowFactory OrderUoWFactory,
	marketplace ports.MarketplaceClient,
	publisher ports.FeedPublisher,
	logger *slog.Logger,
) ConcludeOrderCommandHandler {
	return ConcludeOrderCommandHandler{
		uowFactory:  uowFactory,
		marketplace: marketplace,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle processes the conclusion. A wrong code surfaces as
// ports.ErrMarketplaceRejected with the marketplace's verbatim message and
// leaves the order dispatched.
func (h *ConcludeOrderCommandHandler) Handle(ctx context.Context, cmd ConcludeOrderCommand) error {
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

	if err = h.marketplace.VerifyDeliveryCode(ctx, aggregate.MarketplaceID(), cmd.Code().String()); err != nil {
		return err
	}

	if err = persistOrderWithReplay(ctx, h.uowFactory, aggregate, h.logger); err != nil {
		return err
	}

	notifyOrdersChanged(ctx, h.publisher, h.logger, aggregate.CourierID())
	return nil
}

// readOrder loads an order outside of any mutation, in a transaction that is
// rolled back once the aggregate is in memory.
func readOrder(ctx context.Context, uowFactory OrderUoWFactory, orderID kernel.UUID) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, orderID)
}

// persistOrderWithReplay writes the aggregate, replaying the idempotent
// update on assignment store outages. Each attempt runs in a fresh
// transaction.
func persistOrderWithReplay(ctx context.Context, uowFactory OrderUoWFactory, aggregate *order.Order, logger *slog.Logger) error {
	return retry.Do(ctx, storeWriteBackoff(), func(ctx context.Context) error {
		err := persistOrder(ctx, uowFactory, aggregate)
		if err == nil {
			return nil
		}
		if errors.Is(err, ports.ErrRemoteUnavailable) {
			logger.Warn("store write failed, replaying", "order_id", aggregate.ID().String(), "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

func persistOrder(ctx context.Context, uowFactory OrderUoWFactory, aggregate *order.Order) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
