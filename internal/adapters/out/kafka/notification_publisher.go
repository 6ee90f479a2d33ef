// Package kafka delivers customer-facing status-changed messages to a Kafka
// topic. The publisher is the transport half of the notification outbox:
// the dispatch job reads pending messages and hands them here one by one.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// statusChangedEvent is the wire format of one notification. Field names are
// part of the public contract with downstream consumers.
type statusChangedEvent struct {
	NotificationID string    `json:"notificationId"`
	OrderID        string    `json:"orderId"`
	StatusID       string    `json:"statusId"`
	StatusName     string    `json:"statusName"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NotificationPublisher publishes status-changed messages to Kafka.
// Messages are keyed by order ID so all updates of one order land in the
// same partition and arrive in order.
type NotificationPublisher struct {
	writer *kafka.Writer
}

// NewNotificationPublisher creates a publisher writing to the given topic.
func NewNotificationPublisher(brokers []string, topic string) (*NotificationPublisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}

	return &NotificationPublisher{writer: writer}, nil
}

// Publish delivers one message to the topic. An error leaves the outbox row
// pending, so the dispatch job retries on its next run.
func (p *NotificationPublisher) Publish(ctx context.Context, notification ports.Notification) error {
	if err := notification.ID.Validate(); err != nil {
		return err
	}

	event := statusChangedEvent{
		NotificationID: notification.ID.String(),
		OrderID:        notification.OrderID.String(),
		StatusID:       notification.StatusID.String(),
		StatusName:     notification.StatusName,
		OccurredAt:     notification.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status changed event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(notification.OrderID.String()),
		Value: payload,
	})
}

// Close releases the underlying Kafka writer.
func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}
