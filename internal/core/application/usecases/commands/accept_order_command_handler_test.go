package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/j4ckson185/apk/internal/core/application/usecases/commands"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
	"github.com/j4ckson185/apk/internal/pkg/errs"
)

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()

	testOrder := testSentOrder(t, "courier-1")
	cmd, err := commands.NewAcceptOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockFeedPublisher)
	publisher.On("OrdersChanged", ctx, "courier-1").Return(nil).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Accepted, testOrder.Status())
	assert.NotNil(t, testOrder.AcceptedAt())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	cmd := commands.AcceptOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewAcceptOrderCommandHandler(factory, nil, discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAcceptOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := context.Background()

	// Already accepted: accepting again must fail without a write.
	testOrder := testAcceptedOrder(t, "courier-1")
	cmd, err := commands.NewAcceptOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, nil, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := context.Background()

	testOrder := testSentOrder(t, "courier-1")
	cmd, err := commands.NewAcceptOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).
			Return(nil, errs.NewObjectNotFoundError("order", testOrder.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, nil, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAcceptOrderCommandHandler_Handle_PublisherFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()

	testOrder := testSentOrder(t, "courier-1")
	cmd, err := commands.NewAcceptOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockFeedPublisher)
	publisher.On("OrdersChanged", ctx, "courier-1").Return(errors.New("broker down")).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	// The mutation is committed; notification failure must not bubble up.
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}
