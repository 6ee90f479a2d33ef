package queries

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"
)

var (
	ErrGetStatusesQueryIsNotConstructed = errors.New(
		"GetStatusesQuery must be created via NewGetStatusesQuery constructor",
	)
)

// GetStatusesQuery retrieves the whole status registry with flags and
// outbound transitions. Feeds the configuration screens and the clients
// that render status badges.
//
// Example:
//
//	query := NewGetStatusesQuery()
//	handler := NewGetStatusesQueryHandler(db)
//
//	statuses, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve statuses: %w", err)
//	}
type GetStatusesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStatusesQuery creates a query to retrieve the status registry.
// This is a parameterless query that fetches every configured status.
func NewGetStatusesQuery() GetStatusesQuery {
	return GetStatusesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStatusesQueryIsNotConstructed if validation fails.
func (q GetStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusesQueryIsNotConstructed)
}

// StatusTransitionResponse is one outbound edge of a status.
type StatusTransitionResponse struct {
	ToStatusID         kernel.UUID
	Label              string
	IsScanningRequired bool
}

// GetStatusesQueryResponse is one configured status with its flags and
// outbound transitions.
type GetStatusesQueryResponse struct {
	ID                    kernel.UUID
	Name                  string
	Color                 string
	IsDefault             bool
	IsExplanationRequired bool
	ExplanationLabel      string
	ReserveStock          bool
	ReleaseStock          bool
	ReduceStock           bool
	IncreaseStock         bool
	MarkAsDelivered       bool
	MarkAsRefunded        bool
	SendNotification      bool
	Transitions           []StatusTransitionResponse
}
