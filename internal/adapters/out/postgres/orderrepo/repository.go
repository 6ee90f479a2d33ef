package orderrepo

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its line items to the database. A freshly
// created order has no audit entries yet.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, itemDTOs, logDTOs := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&itemDTOs).Error; err != nil {
		return err
	}
	if len(logDTOs) > 0 {
		if err := r.db.WithContext(ctx).Create(&logDTOs).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database under the optimistic
// concurrency check. The orders row is updated conditionally on the version
// it carried when the aggregate was loaded; a lost race yields a
// VersionConflictError and writes nothing. Audit entries beyond the
// persisted history are appended; the version column equals the audit entry
// count, which is what makes the persisted history length derivable from
// the stale version.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _, logDTOs := fromDomain(aggregate)

	var persisted OrderDTO
	if err := r.db.WithContext(ctx).First(&persisted, "id = ?", dto.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return err
	}

	if persisted.Version >= dto.Version {
		return errs.NewVersionConflictError("order", aggregate.ID().String(), persisted.Version)
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, persisted.Version).
		Updates(map[string]any{
			"current_status_id": dto.CurrentStatusID,
			"delivered_at":      dto.DeliveredAt,
			"refunded_at":       dto.RefundedAt,
			"version":           dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("order", aggregate.ID().String(), persisted.Version)
	}

	newEntries := logDTOs[persisted.Version:]
	if len(newEntries) > 0 {
		if err := r.db.WithContext(ctx).Create(&newEntries).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its line items and audit history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var itemDTOs []ItemDTO
	if err := r.db.WithContext(ctx).
		Order("position").
		Find(&itemDTOs, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	var logDTOs []StatusUpdateLogDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&logDTOs, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, itemDTOs, logDTOs)
}
