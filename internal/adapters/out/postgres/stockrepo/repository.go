package stockrepo

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStockRepository implements the inventory ledger using GORM. Every
// movement is a single conditional UPDATE guarding the counter bounds, so
// concurrent transitions can never drive a counter negative regardless of
// isolation level: the losing writer simply matches zero rows and fails
// with ErrInsufficientStock.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Reserve increments the held counter, guarded so the hold never exceeds
// physical stock.
func (r *GormStockRepository) Reserve(ctx context.Context, productItemID kernel.UUID, quantity kernel.Quantity) error {
	return r.move(ctx, productItemID, quantity, `
		UPDATE stock_items
		SET held = held + ?
		WHERE product_item_id = ? AND physical - held >= ?
	`)
}

// Release decrements the held counter.
func (r *GormStockRepository) Release(ctx context.Context, productItemID kernel.UUID, quantity kernel.Quantity) error {
	return r.move(ctx, productItemID, quantity, `
		UPDATE stock_items
		SET held = held - ?
		WHERE product_item_id = ? AND held >= ?
	`)
}

// Reduce decrements physical stock.
func (r *GormStockRepository) Reduce(ctx context.Context, productItemID kernel.UUID, quantity kernel.Quantity) error {
	return r.move(ctx, productItemID, quantity, `
		UPDATE stock_items
		SET physical = physical - ?
		WHERE product_item_id = ? AND physical >= ?
	`)
}

// Increase increments physical stock. Unconditional: receiving more units
// than expected is not an inventory violation.
func (r *GormStockRepository) Increase(ctx context.Context, productItemID kernel.UUID, quantity kernel.Quantity) error {
	if err := errors.Join(productItemID.Validate(), quantity.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE stock_items
		SET physical = physical + ?
		WHERE product_item_id = ?
	`, quantity.Value(), productItemID.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("productItemId", productItemID.String())
	}

	return nil
}

// move executes one bounded counter movement. Zero rows affected means
// either the product has no ledger row or the guard would be violated; the
// two cases are told apart with a follow-up existence check.
func (r *GormStockRepository) move(
	ctx context.Context,
	productItemID kernel.UUID,
	quantity kernel.Quantity,
	query string,
) error {
	if err := errors.Join(productItemID.Validate(), quantity.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(query, quantity.Value(), productItemID.Bytes(), quantity.Value())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var dto StockItemDTO
	err := r.db.WithContext(ctx).First(&dto, "product_item_id = ?", productItemID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("productItemId", productItemID.String())
	}
	if err != nil {
		return err
	}

	return ports.ErrInsufficientStock
}
