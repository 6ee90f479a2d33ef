package commands

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/status"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
)

// executeEffects runs the planned entry effects for a status within the
// caller's transaction. Stock effects move every line item's quantity; the
// notification effect stages one outbox message for the order. Any failure
// aborts the whole batch so the caller's rollback undoes the partial work.
func executeEffects(
	ctx context.Context,
	uow UoW,
	effects []services.Effect,
	o *order.Order,
	target *status.OrderStatus,
	now time.Time,
) error {
	for _, effect := range effects {
		var err error
		switch effect {
		case services.EffectReserveStock:
			err = forEachItem(ctx, o, uow.StockRepository().Reserve)
		case services.EffectReleaseStock:
			err = forEachItem(ctx, o, uow.StockRepository().Release)
		case services.EffectReduceStock:
			err = forEachItem(ctx, o, uow.StockRepository().Reduce)
		case services.EffectIncreaseStock:
			err = forEachItem(ctx, o, uow.StockRepository().Increase)
		case services.EffectSendNotification:
			err = uow.NotificationOutbox().Enqueue(ctx, ports.Notification{
				ID:         kernel.NewUUID(),
				OrderID:    o.ID(),
				StatusID:   target.ID(),
				StatusName: target.Name(),
				CreatedAt:  now,
			})
		default:
			err = fmt.Errorf("unsupported effect %s", effect)
		}

		if err != nil {
			return fmt.Errorf("%w: %s: %w", ports.ErrSideEffectFailure, effect, err)
		}
	}

	return nil
}

// forEachItem applies one stock movement to every line item of the order.
func forEachItem(
	ctx context.Context,
	o *order.Order,
	move func(ctx context.Context, productItemID kernel.UUID, quantity kernel.Quantity) error,
) error {
	for _, item := range o.Items() {
		if err := move(ctx, item.ProductItemID(), item.Quantity()); err != nil {
			return err
		}
	}
	return nil
}
