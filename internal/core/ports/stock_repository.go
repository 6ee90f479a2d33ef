package ports

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/kernel"
)

var (
	// ErrInsufficientStock is returned when a stock movement would drive a
	// physical or held counter below zero. The transition executing the
	// movement must roll back entirely.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrSideEffectFailure marks a failed entry effect of a status
	// transition. The transition's transaction is rolled back, so the
	// status change is discarded together with the partial effect work.
	ErrSideEffectFailure = errors.New("side effect failed")
)

// StockRepository defines the persistence contract for the inventory ledger.
// Each product item carries two counters: physical (units on the shelf) and
// held (units promised to open orders). Movements are per product item and
// fail with ErrInsufficientStock rather than going negative.
type StockRepository interface {
	// Reserve increments the held counter. Physical stock is untouched.
	Reserve(ctx context.Context, productItemID kernel.UUID, quantity kernel.Quantity) error

	// Release decrements the held counter.
	Release(ctx context.Context, productItemID kernel.UUID, quantity kernel.Quantity) error

	// Reduce decrements physical stock.
	Reduce(ctx context.Context, productItemID kernel.UUID, quantity kernel.Quantity) error

	// Increase increments physical stock.
	Increase(ctx context.Context, productItemID kernel.UUID, quantity kernel.Quantity) error
}
