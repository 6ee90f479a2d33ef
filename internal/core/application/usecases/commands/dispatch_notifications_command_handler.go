package commands

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/core/ports"
)

// DispatchNotificationsCommandHandler drains the notification outbox:
// pending messages are published to the customer-facing channel and marked
// dispatched only after the broker accepted them.
//
// Delivery is at-least-once. A crash between publish and mark leaves the
// row pending, so the next run publishes the message again; consumers must
// deduplicate by notification ID. A failing message does not block the rest
// of the batch.
type DispatchNotificationsCommandHandler struct {
	outbox    ports.NotificationOutbox
	publisher ports.NotificationPublisher
}

// NewDispatchNotificationsCommandHandler creates a handler for outbox
// dispatch runs.
func NewDispatchNotificationsCommandHandler(
	outbox ports.NotificationOutbox,
	publisher ports.NotificationPublisher,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		outbox:    outbox,
		publisher: publisher,
	}
}

// Handle processes one dispatch run: fetch a batch of pending messages,
// publish each, and mark the accepted ones. Returns the joined errors of
// the messages that could not be delivered.
func (h DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pending, err := h.outbox.GetPending(ctx, DispatchBatchSize)
	if err != nil {
		return err
	}

	var failures []error
	for _, notification := range pending {
		if err := h.publisher.Publish(ctx, notification); err != nil {
			failures = append(failures,
				fmt.Errorf("failed to publish notification %s: %w", notification.ID, err))
			continue
		}

		if err := h.outbox.MarkDispatched(ctx, notification.ID); err != nil {
			failures = append(failures,
				fmt.Errorf("failed to mark notification %s dispatched: %w", notification.ID, err))
		}
	}

	return errors.Join(failures...)
}
