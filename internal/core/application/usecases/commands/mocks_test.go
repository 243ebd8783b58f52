package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/j4ckson185/apk/internal/core/application/usecases/commands"
	"github.com/j4ckson185/apk/internal/core/domain/model/courier"
	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
	"github.com/j4ckson185/apk/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) GetActiveByCourier(ctx context.Context, courierID string) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllSentByCourier(ctx context.Context, courierID string) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCourierLocationRepository struct{ mock.Mock }

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

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierLocationRepository() ports.CourierLocationRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierLocationRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCourierLocationUoWFactory struct{ mock.Mock }

func (m *MockCourierLocationUoWFactory) Create() commands.CourierLocationUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierLocationUoW)
}

type MockMarketplaceClient struct{ mock.Mock }

func (m *MockMarketplaceClient) DispatchOrder(ctx context.Context, marketplaceOrderID string) error {
	args := m.Called(ctx, marketplaceOrderID)
	return args.Error(0)
}

func (m *MockMarketplaceClient) VerifyDeliveryCode(ctx context.Context, marketplaceOrderID string, code string) error {
	args := m.Called(ctx, marketplaceOrderID, code)
	return args.Error(0)
}

type MockFeedPublisher struct{ mock.Mock }

func (m *MockFeedPublisher) OrdersChanged(ctx context.Context, courierID string) error {
	args := m.Called(ctx, courierID)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSentOrder(t *testing.T, courierID string) *order.Order {
	t.Helper()
	loc, err := kernel.NewLocation(-8.05, -34.9)
	require.NoError(t, err)
	address, err := order.NewAddress("Av. Boa Viagem", "500", "", "Boa Viagem", "Recife", "PE", "51011-000", &loc)
	require.NoError(t, err)
	item, err := order.NewItem("Pizza grande", 1, 55.0, "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "mkt-778899", courierID, "Carlos", address, []order.Item{item}, 55.0, time.Now())
	require.NoError(t, err)
	return o
}

func testAcceptedOrder(t *testing.T, courierID string) *order.Order {
	t.Helper()
	o := testSentOrder(t, courierID)
	require.NoError(t, o.Accept(time.Now()))
	return o
}

func testDispatchedOrder(t *testing.T, courierID string) *order.Order {
	t.Helper()
	o := testAcceptedOrder(t, courierID)
	require.NoError(t, o.Dispatch(time.Now()))
	return o
}
