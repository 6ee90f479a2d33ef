package queries

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStatusUpdateLogsQueryHandler retrieves pages of an order's audit
// history from the database. The audit table is insert-only and read here
// newest first; uses direct SQL for optimal read performance in the CQRS
// pattern.
type GetStatusUpdateLogsQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusUpdateLogsQueryHandler creates a handler for audit history
// queries. Requires a GORM database connection for query execution.
func NewGetStatusUpdateLogsQueryHandler(db *gorm.DB) GetStatusUpdateLogsQueryHandler {
	return GetStatusUpdateLogsQueryHandler{db: db}
}

// Handle executes the query to retrieve one page of audit entries, newest
// first, along with the total entry count. An order with no history (or an
// unknown order) yields an empty page with Total zero.
func (h GetStatusUpdateLogsQueryHandler) Handle(
	ctx context.Context,
	query GetStatusUpdateLogsQuery,
) (GetStatusUpdateLogsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatusUpdateLogsQueryResponse{}, err
	}

	response := GetStatusUpdateLogsQueryResponse{
		Logs: make([]StatusUpdateLogResponse, 0, query.Limit()),
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM status_update_logs
		WHERE order_id = ?
	`, query.OrderID().String()).Row()
	if err := row.Scan(&response.Total); err != nil {
		return GetStatusUpdateLogsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.updated_by,
			l.updated_at,
			l.status_id,
			s.name,
			l.explanation
		FROM status_update_logs l
		JOIN order_statuses s ON s.id = l.status_id
		WHERE l.order_id = ?
		ORDER BY l.id DESC
		LIMIT ? OFFSET ?
	`, query.OrderID().String(), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return GetStatusUpdateLogsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry StatusUpdateLogResponse
		var updatedBy, statusID uuid.UUID

		err = rows.Scan(
			&updatedBy,
			&entry.UpdatedAt,
			&statusID,
			&entry.StatusName,
			&entry.Explanation,
		)
		if err != nil {
			return GetStatusUpdateLogsQueryResponse{}, err
		}
		if entry.UpdatedBy, err = kernel.UUIDFromBytes(updatedBy[:]); err != nil {
			return GetStatusUpdateLogsQueryResponse{}, err
		}
		if entry.StatusID, err = kernel.UUIDFromBytes(statusID[:]); err != nil {
			return GetStatusUpdateLogsQueryResponse{}, err
		}

		response.Logs = append(response.Logs, entry)
	}

	if err = rows.Err(); err != nil {
		return GetStatusUpdateLogsQueryResponse{}, err
	}

	return response, nil
}
