// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column is the optimistic concurrency token: every committed
// transition increments it, and updates are conditional on the value the
// aggregate was loaded with.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CurrentStatusID uuid.UUID `gorm:"type:uuid;index"`
	DeliveredAt     *time.Time
	RefundedAt      *time.Time
	Version         int
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Lines are written once at order
// creation and never updated; Position preserves the insertion order.
type ItemDTO struct {
	OrderID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductItemID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity      int
	Barcode       string `gorm:"index"`
	Position      int
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusUpdateLogDTO represents one audit entry. The table is insert-only:
// rows are appended by the transition applier and never modified. The
// auto-incremented ID doubles as the chronological sort key.
type StatusUpdateLogDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	UpdatedBy   uuid.UUID `gorm:"type:uuid"`
	UpdatedAt   time.Time
	StatusID    uuid.UUID `gorm:"type:uuid"`
	Explanation string
}

// TableName specifies the database table name for audit entries.
func (StatusUpdateLogDTO) TableName() string {
	return "status_update_logs"
}

// fromDomain converts an order domain aggregate to its database
// representation: the orders row plus one row per line item and per audit
// entry.
func fromDomain(aggregate *order.Order) (OrderDTO, []ItemDTO, []StatusUpdateLogDTO) {
	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CurrentStatusID: aggregate.CurrentStatusID().Bytes(),
		DeliveredAt:     aggregate.DeliveredAt(),
		RefundedAt:      aggregate.RefundedAt(),
		Version:         aggregate.Version(),
	}

	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			OrderID:       dto.ID,
			ProductItemID: item.ProductItemID().Bytes(),
			Quantity:      item.Quantity().Value(),
			Barcode:       item.Barcode(),
			Position:      i,
		})
	}

	logs := aggregate.StatusUpdateLogs()
	logDTOs := make([]StatusUpdateLogDTO, 0, len(logs))
	for _, entry := range logs {
		logDTOs = append(logDTOs, StatusUpdateLogDTO{
			OrderID:     dto.ID,
			UpdatedBy:   entry.UpdatedBy().Bytes(),
			UpdatedAt:   entry.UpdatedAt(),
			StatusID:    entry.StatusID().Bytes(),
			Explanation: entry.Explanation(),
		})
	}

	return dto, itemDTOs, logDTOs
}

// toDomain converts database rows to an order domain aggregate.
// Reconstructs the complete aggregate including items, audit history and the
// concurrency version using RestoreOrder; item and log slices must arrive in
// their persisted order.
func toDomain(dto OrderDTO, itemDTOs []ItemDTO, logDTOs []StatusUpdateLogDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	currentStatusID, err := kernel.UUIDFromBytes(dto.CurrentStatusID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		productItemID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		quantity, itemErr := kernel.NewQuantity(itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(productItemID, quantity, itemDTO.Barcode)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	logs := make([]order.StatusUpdateLog, 0, len(logDTOs))
	for _, logDTO := range logDTOs {
		updatedBy, logErr := kernel.UUIDFromBytes(logDTO.UpdatedBy[:])
		if logErr != nil {
			return nil, logErr
		}
		statusID, logErr := kernel.UUIDFromBytes(logDTO.StatusID[:])
		if logErr != nil {
			return nil, logErr
		}
		entry, logErr := order.NewStatusUpdateLog(updatedBy, logDTO.UpdatedAt, statusID, logDTO.Explanation)
		if logErr != nil {
			return nil, logErr
		}
		logs = append(logs, entry)
	}

	return order.RestoreOrder(id, currentStatusID, items, logs, dto.DeliveredAt, dto.RefundedAt, dto.Version)
}
