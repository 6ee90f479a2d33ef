// Package stockrepo persists the inventory ledger: per-product physical and
// held unit counters moved by status transition effects.
package stockrepo

import (
	"github.com/google/uuid"
)

// StockItemDTO represents one product's inventory counters. Physical counts
// units on the shelf; Held counts units promised to open orders. Both stay
// non-negative and Held never exceeds Physical.
type StockItemDTO struct {
	ProductItemID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Physical      int
	Held          int
}

// TableName specifies the database table name for stock counters.
func (StockItemDTO) TableName() string {
	return "stock_items"
}
