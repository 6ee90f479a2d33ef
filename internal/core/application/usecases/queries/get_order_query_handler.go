package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves the order detail read model from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern; the available transitions are derived by joining the
// transition edges outbound from the order's current status.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	order, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query to retrieve one order with its status badge,
// line items, and available transitions. Returns an ObjectNotFoundError
// when no order has the given identifier.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.delivered_at,
			o.refunded_at,
			o.version,
			s.id,
			s.name,
			s.color
		FROM orders o
		JOIN order_statuses s ON s.id = o.current_status_id
		WHERE o.id = ?
	`, query.OrderID().String()).Row()

	var (
		orderID     uuid.UUID
		deliveredAt sql.NullTime
		refundedAt  sql.NullTime
		statusID    uuid.UUID
	)
	err := row.Scan(
		&orderID,
		&deliveredAt,
		&refundedAt,
		&response.Version,
		&statusID,
		&response.Status.Name,
		&response.Status.Color,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.Status.ID, err = kernel.UUIDFromBytes(statusID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.DeliveredAt = nullableTime(deliveredAt)
	response.RefundedAt = nullableTime(refundedAt)

	if response.Items, err = h.loadItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.AvailableTransitions, err = h.loadAvailableTransitions(ctx, response.Status.ID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

// loadItems reads the order's line items in insertion order.
func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	items := make([]OrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_item_id,
			quantity,
			barcode
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var productItemID uuid.UUID

		if err = rows.Scan(&productItemID, &item.Quantity, &item.Barcode); err != nil {
			return nil, err
		}
		if item.ProductItemID, err = kernel.UUIDFromBytes(productItemID[:]); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// loadAvailableTransitions derives the actions offered from the current
// status by joining the outbound edges with their target statuses. A status
// with no outbound edges yields an empty slice, never nil SQL errors.
func (h GetOrderQueryHandler) loadAvailableTransitions(
	ctx context.Context,
	currentStatusID kernel.UUID,
) ([]AvailableTransitionResponse, error) {
	transitions := make([]AvailableTransitionResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.to_status_id,
			s.name,
			t.label,
			t.is_scanning_required,
			s.is_explanation_required,
			s.explanation_label
		FROM status_transitions t
		JOIN order_statuses s ON s.id = t.to_status_id
		WHERE t.from_status_id = ?
		ORDER BY t.position
	`, currentStatusID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var transition AvailableTransitionResponse
		var toStatusID uuid.UUID

		err = rows.Scan(
			&toStatusID,
			&transition.ToStatusName,
			&transition.Label,
			&transition.IsScanningRequired,
			&transition.IsExplanationRequired,
			&transition.ExplanationLabel,
		)
		if err != nil {
			return nil, err
		}
		if transition.ToStatusID, err = kernel.UUIDFromBytes(toStatusID[:]); err != nil {
			return nil, err
		}

		transitions = append(transitions, transition)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transitions, nil
}

// nullableTime converts a nullable SQL timestamp to a *time.Time.
func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
