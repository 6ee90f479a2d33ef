// Package outboxrepo persists the notification outbox: status-changed
// messages staged inside the transition transaction and delivered
// asynchronously by the dispatch job.
package outboxrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"

	"github.com/google/uuid"
)

// NotificationDTO represents one staged message. DispatchedAt stays NULL
// until the broker accepted the message, which is what makes delivery
// at-least-once: a crash between publish and mark leaves the row pending
// for another attempt.
type NotificationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	StatusID     uuid.UUID `gorm:"type:uuid"`
	StatusName   string
	CreatedAt    time.Time
	DispatchedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (NotificationDTO) TableName() string {
	return "notification_outbox"
}

// fromDomain converts an outbox message to its database representation.
func fromDomain(n ports.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         n.ID.Bytes(),
		OrderID:    n.OrderID.Bytes(),
		StatusID:   n.StatusID.Bytes(),
		StatusName: n.StatusName,
		CreatedAt:  n.CreatedAt,
	}
}

// toDomain converts a database row back to an outbox message.
func toDomain(dto NotificationDTO) (ports.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Notification{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.Notification{}, err
	}
	statusID, err := kernel.UUIDFromBytes(dto.StatusID[:])
	if err != nil {
		return ports.Notification{}, err
	}

	return ports.Notification{
		ID:         id,
		OrderID:    orderID,
		StatusID:   statusID,
		StatusName: dto.StatusName,
		CreatedAt:  dto.CreatedAt,
	}, nil
}
