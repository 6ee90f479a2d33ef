package commands

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders always start in the registry's default status; the default
// status's entry effects (typically reserving stock) fire in the same
// transaction that persists the order.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), items)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Loads the status registry for the default status, builds the aggregate,
// persists it, and executes the default status's entry effects. Everything
// commits together or rolls back on error.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	graph, err := uow.StatusRepository().GetGraph(ctx)
	if err != nil {
		return err
	}
	defaultStatus := graph.Default()

	items := make([]order.Item, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		quantity, err := kernel.NewQuantity(line.Quantity)
		if err != nil {
			return err
		}
		item, err := order.NewItem(line.ProductItemID, quantity, line.Barcode)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), defaultStatus, items)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	effects := services.NewEffectPlanner().Plan(defaultStatus.Actions())
	if err = executeEffects(ctx, uow, effects, aggregate, defaultStatus, time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
