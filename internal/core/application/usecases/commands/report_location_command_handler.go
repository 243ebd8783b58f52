package commands

import (
	"context"

	"github.com/j4ckson185/apk/internal/core/domain/model/courier"
)

// ReportLocationCommandHandler upserts the courier's last-reported position.
// The store keeps exactly one row per courier, so a report overwrites the
// previous one.
type ReportLocationCommandHandler struct {
	uowFactory CourierLocationUoWFactory
}

// NewReportLocationCommandHandler creates a handler for position reports.
func NewReportLocationCommandHandler(uowFactory CourierLocationUoWFactory) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle publishes the position report.
func (h *ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := courier.NewCourierLocation(cmd.CourierID(), cmd.Location(), cmd.ReportedAt())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierLocationRepository().Upsert(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
