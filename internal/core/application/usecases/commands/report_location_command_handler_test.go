package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/j4ckson185/apk/internal/core/application/usecases/commands"
	"github.com/j4ckson185/apk/internal/core/domain/model/courier"
	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/pkg/errs"
)

func TestReportLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()

	location, err := kernel.NewLocation(-8.05, -34.9)
	require.NoError(t, err)
	reportedAt := time.Now()

	cmd, err := commands.NewReportLocationCommand("courier-1", location, reportedAt)
	require.NoError(t, err)

	locationRepo := new(MockCourierLocationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierLocationRepository").Return(locationRepo).Once(),
		locationRepo.On("Upsert", ctx, mock.AnythingOfType("*courier.CourierLocation")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierLocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportLocationCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	upserted := locationRepo.Calls[0].Arguments.Get(1).(*courier.CourierLocation)
	assert.Equal(t, "courier-1", upserted.CourierID())
	assert.True(t, upserted.Active())
	equal, err := upserted.Location().IsEqual(location)
	require.NoError(t, err)
	assert.True(t, equal)
	locationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReportLocationCommand_Validation(t *testing.T) {
	location, err := kernel.NewLocation(-8.05, -34.9)
	require.NoError(t, err)

	t.Run("empty_courier_id", func(t *testing.T) {
		_, err := commands.NewReportLocationCommand("", location, time.Now())
		require.ErrorIs(t, err, commands.ErrCourierIDIsRequired)
	})

	t.Run("unconstructed_location", func(t *testing.T) {
		_, err := commands.NewReportLocationCommand("courier-1", kernel.Location{}, time.Now())
		require.Error(t, err)
	})

	t.Run("zero_reported_at", func(t *testing.T) {
		_, err := commands.NewReportLocationCommand("courier-1", location, time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestDeactivateCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()

	cmd, err := commands.NewDeactivateCourierCommand("courier-1")
	require.NoError(t, err)

	location, err := kernel.NewLocation(-8.05, -34.9)
	require.NoError(t, err)
	existing, err := courier.NewCourierLocation("courier-1", location, time.Now())
	require.NoError(t, err)

	locationRepo := new(MockCourierLocationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierLocationRepository").Return(locationRepo).Once(),
		locationRepo.On("Get", ctx, "courier-1").Return(existing, nil).Once(),
		locationRepo.On("Upsert", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierLocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeactivateCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, existing.Active())
	locationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeactivateCourierCommandHandler_Handle_NeverReportedIsNoOp(t *testing.T) {
	ctx := context.Background()

	cmd, err := commands.NewDeactivateCourierCommand("courier-1")
	require.NoError(t, err)

	locationRepo := new(MockCourierLocationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierLocationRepository").Return(locationRepo).Once(),
		locationRepo.On("Get", ctx, "courier-1").
			Return(nil, errs.NewObjectNotFoundError("courierLocation", "courier-1")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierLocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeactivateCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	locationRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
