package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/j4ckson185/apk/internal/adapters/in/positioning"
	"github.com/j4ckson185/apk/internal/core/application/tracking"
	"github.com/j4ckson185/apk/internal/core/application/usecases/commands"
	"github.com/j4ckson185/apk/internal/core/domain/model/courier"
	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/ports"
)

type MockCourierLocationRepository struct {
	mock.Mock
}

func (m *MockCourierLocationRepository) Upsert(ctx context.Context, aggregate *courier.CourierLocation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierLocationRepository) Get(ctx context.Context, courierID string) (*courier.CourierLocation, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.CourierLocation), args.Error(1)
}

type MockCourierLocationUoW struct {
	mock.Mock
}

func (m *MockCourierLocationUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCourierLocationUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCourierLocationUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCourierLocationUoW) CourierLocationRepository() ports.CourierLocationRepository {
	return m.Called().Get(0).(ports.CourierLocationRepository)
}

type MockCourierLocationUoWFactory struct {
	mock.Mock
}

func (m *MockCourierLocationUoWFactory) Create() commands.CourierLocationUoW {
	return m.Called().Get(0).(commands.CourierLocationUoW)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// flushFixture wires the pipeline the way the app does: GPS fixes enter the
// positioning gateway, the started tracker retains significant ones, the
// flush job persists them.
type flushFixture struct {
	gateway    *positioning.Gateway
	job        *LocationFlushJob
	repository *MockCourierLocationRepository
}

func newFlushFixture(t *testing.T) *flushFixture {
	t.Helper()

	repository := new(MockCourierLocationRepository)

	uow := new(MockCourierLocationUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("CourierLocationRepository").Return(repository)

	factory := new(MockCourierLocationUoWFactory)
	factory.On("Create").Return(uow)

	gateway := positioning.NewGateway()
	tracker := tracking.NewTracker(gateway, 10.0, discardLogger())
	require.NoError(t, tracker.Start(func(kernel.Position) {}))
	t.Cleanup(tracker.Stop)

	handler := commands.NewReportLocationCommandHandler(factory)
	job := NewLocationFlushJob("courier-1", tracker, handler, discardLogger())

	return &flushFixture{
		gateway:    gateway,
		job:        job,
		repository: repository,
	}
}

func (f *flushFixture) report(t *testing.T, lat, lon float64) {
	t.Helper()
	location, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	position, err := kernel.NewPosition(location, 5.0, time.Now())
	require.NoError(t, err)
	require.NoError(t, f.gateway.Report(position))
}

func Test_LocationFlushJob_no_position_yet_writes_nothing(t *testing.T) {
	// Given
	f := newFlushFixture(t)

	// When
	require.NoError(t, f.job.flush(context.Background()))

	// Then
	f.repository.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func Test_LocationFlushJob_persists_reported_fix(t *testing.T) {
	// Given
	f := newFlushFixture(t)
	f.repository.On("Upsert", mock.Anything, mock.AnythingOfType("*courier.CourierLocation")).Return(nil).Once()

	// When a fix reaches the gateway, a flush writes it.
	f.report(t, -8.063, -34.871)
	require.NoError(t, f.job.flush(context.Background()))

	// Then
	f.repository.AssertExpectations(t)
}

func Test_LocationFlushJob_idle_courier_produces_no_writes(t *testing.T) {
	// Given a flushed position
	f := newFlushFixture(t)
	f.repository.On("Upsert", mock.Anything, mock.AnythingOfType("*courier.CourierLocation")).Return(nil).Once()
	f.report(t, -8.063, -34.871)
	require.NoError(t, f.job.flush(context.Background()))

	// When subsequent ticks see no movement
	require.NoError(t, f.job.flush(context.Background()))
	require.NoError(t, f.job.flush(context.Background()))

	// Then no further writes happen.
	f.repository.AssertNumberOfCalls(t, "Upsert", 1)
}

func Test_LocationFlushJob_small_movement_is_not_flushed(t *testing.T) {
	// Given a flushed position
	f := newFlushFixture(t)
	f.repository.On("Upsert", mock.Anything, mock.AnythingOfType("*courier.CourierLocation")).Return(nil).Once()
	f.report(t, -8.063, -34.871)
	require.NoError(t, f.job.flush(context.Background()))

	// When the courier drifts about five meters
	f.report(t, -8.063045, -34.871)
	require.NoError(t, f.job.flush(context.Background()))

	// Then the jitter is not written.
	f.repository.AssertNumberOfCalls(t, "Upsert", 1)
}

func Test_LocationFlushJob_significant_movement_is_flushed_again(t *testing.T) {
	// Given a flushed position
	f := newFlushFixture(t)
	f.repository.On("Upsert", mock.Anything, mock.AnythingOfType("*courier.CourierLocation")).Return(nil).Twice()
	f.report(t, -8.063, -34.871)
	require.NoError(t, f.job.flush(context.Background()))

	// When the courier moves roughly a hundred meters
	f.report(t, -8.0639, -34.871)
	require.NoError(t, f.job.flush(context.Background()))

	// Then the new position is written as well.
	f.repository.AssertExpectations(t)
	f.repository.AssertNumberOfCalls(t, "Upsert", 2)
}
