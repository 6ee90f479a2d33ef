package outboxrepo

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationOutbox implements the notification outbox using GORM.
type GormNotificationOutbox struct {
	db *gorm.DB
}

// NewGormNotificationOutbox creates a new GORM notification outbox.
func NewGormNotificationOutbox(db *gorm.DB) *GormNotificationOutbox {
	return &GormNotificationOutbox{db: db}
}

// Enqueue stages a message. Called within the transition's transaction, so
// the row commits and rolls back together with the status change.
func (r *GormNotificationOutbox) Enqueue(ctx context.Context, notification ports.Notification) error {
	if err := notification.ID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(notification)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPending returns staged messages not yet dispatched, oldest first.
func (r *GormNotificationOutbox) GetPending(ctx context.Context, limit int) ([]ports.Notification, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]ports.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// MarkDispatched records that the broker accepted the message.
func (r *GormNotificationOutbox) MarkDispatched(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ?", id.Bytes()).
		Update("dispatched_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notificationId", id.String())
	}

	return nil
}
