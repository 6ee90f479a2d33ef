package commands_test

import (
	"testing"
	"time"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewApplyTransitionCommand(t *testing.T) {
	t.Run("creates a valid command", func(t *testing.T) {
		cmd, err := commands.NewApplyTransitionCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"damaged in transit", map[string]int{"1001": 2})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Equal(t, "damaged in transit", cmd.Explanation())
		require.Equal(t, map[string]int{"1001": 2}, cmd.ScannedCounts())
	})

	t.Run("rejects invalid identifiers", func(t *testing.T) {
		var zero kernel.UUID
		_, err := commands.NewApplyTransitionCommand(
			zero, kernel.NewUUID(), kernel.NewUUID(), "", nil)
		require.Error(t, err)

		_, err = commands.NewApplyTransitionCommand(
			kernel.NewUUID(), zero, kernel.NewUUID(), "", nil)
		require.Error(t, err)

		_, err = commands.NewApplyTransitionCommand(
			kernel.NewUUID(), kernel.NewUUID(), zero, "", nil)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.ApplyTransitionCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrApplyTransitionCommandIsNotConstructed)
	})

	t.Run("scanned counts are copied, not aliased", func(t *testing.T) {
		counts := map[string]int{"1001": 1}
		cmd, err := commands.NewApplyTransitionCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", counts)
		require.NoError(t, err)

		counts["1001"] = 99

		require.Equal(t, 1, cmd.ScannedCounts()["1001"])
	})
}

func TestApplyTransitionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	o := placedOrder(t, w)
	cmd, _ := commands.NewApplyTransitionCommand(
		o.ID(), w.cancelled.ID(), kernel.NewUUID(), "customer asked to cancel", nil)

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
		// Cancelled releases the reserved stock.
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Release", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyTransitionCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.True(t, o.CurrentStatusID().IsEqual(w.cancelled.ID()))
	require.Len(t, o.StatusUpdateLogs(), 1)
	require.Equal(t, "customer asked to cancel", o.StatusUpdateLogs()[0].Explanation())
	require.Equal(t, 1, o.Version())
	orderRepo.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyTransitionCommandHandler_Handle_ScanGate(t *testing.T) {
	ctx := t.Context()

	t.Run("rejects without a complete scan tally", func(t *testing.T) {
		w := newWorkflow(t)
		o := placedOrder(t, w)
		cmd, _ := commands.NewApplyTransitionCommand(
			o.ID(), w.shipped.ID(), kernel.NewUUID(), "", map[string]int{"1001": 1})

		orderRepo := new(MockOrderRepository)
		statusRepo := new(MockStatusRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
			uow.On("StatusRepository").Return(statusRepo).Once(),
			statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewApplyTransitionCommandHandler(factory)
		err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrTransitionRejected)
		require.ErrorIs(t, err, services.ErrScanIncomplete)
		require.Equal(t, 0, o.Version())
		uow.AssertExpectations(t)
	})

	t.Run("a fabricated tally cannot overstate completion", func(t *testing.T) {
		w := newWorkflow(t)
		o := placedOrder(t, w)
		// Unknown barcodes and inflated counts replay into nothing useful:
		// the order needs two units of 1001 and the tally covers one.
		cmd, _ := commands.NewApplyTransitionCommand(
			o.ID(), w.shipped.ID(), kernel.NewUUID(), "",
			map[string]int{"1001": 1, "9999": 500})

		orderRepo := new(MockOrderRepository)
		statusRepo := new(MockStatusRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
			uow.On("StatusRepository").Return(statusRepo).Once(),
			statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewApplyTransitionCommandHandler(factory)
		err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, services.ErrScanIncomplete)
	})

	t.Run("passes with a complete tally and runs the shipped effects", func(t *testing.T) {
		w := newWorkflow(t)
		o := placedOrder(t, w)
		cmd, _ := commands.NewApplyTransitionCommand(
			o.ID(), w.shipped.ID(), kernel.NewUUID(), "", map[string]int{"1001": 2})

		orderRepo := new(MockOrderRepository)
		statusRepo := new(MockStatusRepository)
		stockRepo := new(MockStockRepository)
		outbox := new(MockNotificationOutbox)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
			uow.On("StatusRepository").Return(statusRepo).Once(),
			statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
			// Shipped releases the hold, reduces physical stock, notifies.
			uow.On("StockRepository").Return(stockRepo).Once(),
			stockRepo.On("Release", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once(),
			uow.On("StockRepository").Return(stockRepo).Once(),
			stockRepo.On("Reduce", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once(),
			uow.On("NotificationOutbox").Return(outbox).Once(),
			outbox.On("Enqueue", mock.Anything, mock.AnythingOfType("ports.Notification")).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewApplyTransitionCommandHandler(factory)
		err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.True(t, o.CurrentStatusID().IsEqual(w.shipped.ID()))
		outbox.AssertExpectations(t)
		stockRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})
}

func TestApplyTransitionCommandHandler_Handle_ExplanationGate(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	o := placedOrder(t, w)
	cmd, _ := commands.NewApplyTransitionCommand(
		o.ID(), w.cancelled.ID(), kernel.NewUUID(), "   ", nil)

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyTransitionCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrTransitionRejected)
	require.ErrorIs(t, err, services.ErrExplanationRequired)
	uow.AssertExpectations(t)
}

func TestApplyTransitionCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	o := placedOrder(t, w)
	// Cancelled has no outbound edges; once there, nothing is offered.
	_, err := o.ApplyTransition(w.cancelled, kernel.NewUUID(), "late delivery", time.Now())
	require.NoError(t, err)

	cmd, _ := commands.NewApplyTransitionCommand(
		o.ID(), w.shipped.ID(), kernel.NewUUID(), "", map[string]int{"1001": 2})

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyTransitionCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrTransitionRejected)
	require.ErrorIs(t, err, services.ErrIllegalTransition)
}

func TestApplyTransitionCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	o := placedOrder(t, w)
	cmd, _ := commands.NewApplyTransitionCommand(
		o.ID(), w.cancelled.ID(), kernel.NewUUID(), "duplicate order", nil)

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Release", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, o).
			Return(errs.NewVersionConflictError("order", o.ID().String(), 0)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyTransitionCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrConcurrentModification)
	uow.AssertExpectations(t)
}

func TestApplyTransitionCommandHandler_Handle_SideEffectFailure(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	o := placedOrder(t, w)
	cmd, _ := commands.NewApplyTransitionCommand(
		o.ID(), w.shipped.ID(), kernel.NewUUID(), "", map[string]int{"1001": 2})

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("GetGraph", ctx).Return(w.graph, nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Release", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Reduce", mock.Anything, mock.Anything, mock.Anything).
			Return(ports.ErrInsufficientStock).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyTransitionCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrSideEffectFailure)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	uow.AssertExpectations(t)
}

func TestApplyTransitionCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewApplyTransitionCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("orderId", cmd.OrderID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyTransitionCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}
