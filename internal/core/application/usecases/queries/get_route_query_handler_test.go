package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/j4ckson185/apk/internal/core/application/usecases/queries"
	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
	"github.com/j4ckson185/apk/internal/core/domain/services"
)

type MockRouteOrderRepository struct{ mock.Mock }

func (m *MockRouteOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRouteOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRouteOrderRepository) GetActiveByCourier(ctx context.Context, courierID string) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockRouteOrderRepository) GetAllSentByCourier(ctx context.Context, courierID string) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func acceptedOrderAt(t *testing.T, lat, lng float64) *order.Order {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	address, err := order.NewAddress("Rua Aurora", "42", "", "Boa Vista", "Recife", "PE", "50050-000", &loc)
	require.NoError(t, err)
	item, err := order.NewItem("Combo", 1, 30.0, "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "mkt-1", "courier-1", "Ana", address, []order.Item{item}, 30.0, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.Accept(time.Now()))
	return o
}

func TestGetRouteQueryHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()

	origin, err := kernel.NewLocation(0, 0)
	require.NoError(t, err)
	query, err := queries.NewGetRouteQuery("courier-1", origin)
	require.NoError(t, err)

	near := acceptedOrderAt(t, 0.001, 0)
	far := acceptedOrderAt(t, 0.003, 0)

	orderRepo := new(MockRouteOrderRepository)
	orderRepo.On("GetActiveByCourier", ctx, "courier-1").
		Return([]*order.Order{far, near}, nil).Once()

	handler := queries.NewGetRouteQueryHandler(orderRepo, services.NewRoutePlanner())
	resp, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	require.NotNil(t, resp)

	// Depot first, then nearest stop first.
	require.Len(t, resp.Stops, 3)
	assert.Nil(t, resp.Stops[0].OrderID)
	assert.True(t, resp.Stops[1].OrderID.IsEqual(near.ID()))
	assert.True(t, resp.Stops[2].OrderID.IsEqual(far.ID()))
	assert.Greater(t, resp.DistanceMeters, 0.0)
	assert.NotEmpty(t, resp.DistanceDisplay)
	assert.NotEmpty(t, resp.EstimatedDisplay)
	assert.Contains(t, resp.MapsURL, "https://www.google.com/maps/dir/")
	assert.Equal(t, 0, resp.SkippedUngeocoded)
}

func TestGetRouteQueryHandler_Handle_NoEligibleStops(t *testing.T) {
	ctx := context.Background()

	origin, err := kernel.NewLocation(0, 0)
	require.NoError(t, err)
	query, err := queries.NewGetRouteQuery("courier-1", origin)
	require.NoError(t, err)

	orderRepo := new(MockRouteOrderRepository)
	orderRepo.On("GetActiveByCourier", ctx, "courier-1").
		Return([]*order.Order{}, nil).Once()

	handler := queries.NewGetRouteQueryHandler(orderRepo, services.NewRoutePlanner())
	resp, err := handler.Handle(ctx, query)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrNoEligibleStops)
	assert.Nil(t, resp)
}

func TestGetRouteQueryHandler_Handle_CountsUngeocodedStops(t *testing.T) {
	ctx := context.Background()

	origin, err := kernel.NewLocation(0, 0)
	require.NoError(t, err)
	query, err := queries.NewGetRouteQuery("courier-1", origin)
	require.NoError(t, err)

	routable := acceptedOrderAt(t, 0.001, 0)

	// An order whose address was never geocoded.
	address, err := order.NewAddress("Rua Sem Numero", "", "", "", "Recife", "PE", "", nil)
	require.NoError(t, err)
	item, err := order.NewItem("Lanche", 1, 12.0, "")
	require.NoError(t, err)
	ungeocoded, err := order.NewOrder(kernel.NewUUID(), "mkt-2", "courier-1", "Bia", address, []order.Item{item}, 12.0, time.Now())
	require.NoError(t, err)
	require.NoError(t, ungeocoded.Accept(time.Now()))

	orderRepo := new(MockRouteOrderRepository)
	orderRepo.On("GetActiveByCourier", ctx, "courier-1").
		Return([]*order.Order{routable, ungeocoded}, nil).Once()

	handler := queries.NewGetRouteQueryHandler(orderRepo, services.NewRoutePlanner())
	resp, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, resp.Stops, 2)
	assert.Equal(t, 1, resp.SkippedUngeocoded)
}

func TestGetRouteQuery_Validation(t *testing.T) {
	origin, err := kernel.NewLocation(0, 0)
	require.NoError(t, err)

	t.Run("empty_courier_id", func(t *testing.T) {
		_, err := queries.NewGetRouteQuery("", origin)
		require.ErrorIs(t, err, queries.ErrCourierIDIsRequired)
	})

	t.Run("unconstructed_origin", func(t *testing.T) {
		_, err := queries.NewGetRouteQuery("courier-1", kernel.Location{})
		require.Error(t, err)
	})

	t.Run("not_constructed", func(t *testing.T) {
		query := queries.GetRouteQuery{}
		require.ErrorIs(t, query.Validate(), queries.ErrGetRouteQueryIsNotConstructed)
	})
}
