package commands_test

import (
	"errors"
	"testing"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	productID := kernel.NewUUID()
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.CreateOrderItem{
		{ProductItemID: productID, Quantity: 2, Barcode: "1001"},
	})

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		// Placed reserves stock for the single line.
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Reserve", mock.Anything, productID, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	statusRepo.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_InvalidItemQuantity(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.CreateOrderItem{
		{ProductItemID: kernel.NewUUID(), Quantity: 0, Barcode: "1001"},
	})

	statusRepo := new(MockStatusRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.CreateOrderItem{
		{ProductItemID: kernel.NewUUID(), Quantity: 1, Barcode: "1001"},
	})

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_ReserveError(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.CreateOrderItem{
		{ProductItemID: kernel.NewUUID(), Quantity: 1, Barcode: "1001"},
	})

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Reserve", mock.Anything, mock.Anything, mock.Anything).
			Return(ports.ErrInsufficientStock).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrSideEffectFailure)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.CreateOrderItem{
		{ProductItemID: kernel.NewUUID(), Quantity: 1, Barcode: "1001"},
	})

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Reserve", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}
