package queries

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStatusesQueryHandler retrieves the status registry from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetStatusesQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusesQueryHandler creates a handler for status registry queries.
// Requires a GORM database connection for query execution.
func NewGetStatusesQueryHandler(db *gorm.DB) GetStatusesQueryHandler {
	return GetStatusesQueryHandler{db: db}
}

// Handle executes the query to retrieve every configured status with its
// flags and outbound transitions, in configuration order.
func (h GetStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetStatusesQuery,
) ([]GetStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]GetStatusesQueryResponse, 0)
	byID := make(map[kernel.UUID]int)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			color,
			is_default,
			is_explanation_required,
			explanation_label,
			reserve_stock,
			release_stock,
			reduce_stock,
			increase_stock,
			mark_as_delivered,
			mark_as_refunded,
			send_notification
		FROM order_statuses
		ORDER BY position
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var statusResp GetStatusesQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&statusResp.Name,
			&statusResp.Color,
			&statusResp.IsDefault,
			&statusResp.IsExplanationRequired,
			&statusResp.ExplanationLabel,
			&statusResp.ReserveStock,
			&statusResp.ReleaseStock,
			&statusResp.ReduceStock,
			&statusResp.IncreaseStock,
			&statusResp.MarkAsDelivered,
			&statusResp.MarkAsRefunded,
			&statusResp.SendNotification,
		)
		if err != nil {
			return nil, err
		}
		if statusResp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		statusResp.Transitions = make([]StatusTransitionResponse, 0)

		byID[statusResp.ID] = len(statuses)
		statuses = append(statuses, statusResp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = h.attachTransitions(ctx, statuses, byID); err != nil {
		return nil, err
	}

	return statuses, nil
}

// attachTransitions loads every edge and attaches it to its source status.
func (h GetStatusesQueryHandler) attachTransitions(
	ctx context.Context,
	statuses []GetStatusesQueryResponse,
	byID map[kernel.UUID]int,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status_id,
			to_status_id,
			label,
			is_scanning_required
		FROM status_transitions
		ORDER BY position
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var transition StatusTransitionResponse
		var fromID, toID uuid.UUID

		if err = rows.Scan(&fromID, &toID, &transition.Label, &transition.IsScanningRequired); err != nil {
			return err
		}
		if transition.ToStatusID, err = kernel.UUIDFromBytes(toID[:]); err != nil {
			return err
		}
		sourceID, err := kernel.UUIDFromBytes(fromID[:])
		if err != nil {
			return err
		}

		if idx, ok := byID[sourceID]; ok {
			statuses[idx].Transitions = append(statuses[idx].Transitions, transition)
		}
	}

	return rows.Err()
}
