package commands

import (
	"context"
	"errors"
	"time"

	"github.com/j4ckson185/apk/internal/pkg/errs"
)

// DeactivateCourierCommandHandler flags the courier's position row inactive.
// A courier who never reported a position is already invisible, so that case
// is a successful no-op.
type DeactivateCourierCommandHandler struct {
	uowFactory CourierLocationUoWFactory
}

// NewDeactivateCourierCommandHandler creates a handler for going off shift.
func NewDeactivateCourierCommandHandler(uowFactory CourierLocationUoWFactory) DeactivateCourierCommandHandler {
	return DeactivateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the courier inactive.
func (h *DeactivateCourierCommandHandler) Handle(ctx context.Context, cmd DeactivateCourierCommand) error {
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

	repo := uow.CourierLocationRepository()
	aggregate, err := repo.Get(ctx, cmd.CourierID())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	aggregate.Deactivate(time.Now())
	if err = repo.Upsert(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
