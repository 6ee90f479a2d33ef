package ports

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/kernel"
)

// Notification is a customer-facing status-changed message staged for
// dispatch. Messages are written to the outbox inside the transition's
// transaction and delivered asynchronously, so the broker being down never
// fails a transition and a committed transition never loses its message.
type Notification struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	StatusID   kernel.UUID
	StatusName string
	CreatedAt  time.Time
}

// NotificationOutbox defines the persistence contract for the transactional
// outbox. Enqueue participates in the caller's transaction; the remaining
// methods serve the background dispatcher. Delivery is at-least-once:
// a message is marked dispatched only after the broker accepted it.
type NotificationOutbox interface {
	// Enqueue stages a message within the current transaction.
	Enqueue(ctx context.Context, notification Notification) error

	// GetPending returns staged messages not yet dispatched, oldest first,
	// up to the given limit.
	GetPending(ctx context.Context, limit int) ([]Notification, error)

	// MarkDispatched records that the broker accepted the message.
	MarkDispatched(ctx context.Context, id kernel.UUID) error
}

// NotificationPublisher defines the transport contract for delivering
// status-changed messages to the customer-facing channel.
type NotificationPublisher interface {
	// Publish delivers one message. An error leaves the message pending
	// for a later dispatch attempt.
	Publish(ctx context.Context, notification Notification) error
}
