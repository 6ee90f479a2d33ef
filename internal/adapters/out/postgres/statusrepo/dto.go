// Package statusrepo persists the operator-configured status registry and
// transition edges. Configuration writes re-validate the whole graph before
// touching the database, so an invalid registry can never be persisted.
package statusrepo

import (
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/status"

	"github.com/google/uuid"
)

// StatusDTO represents one configured order status. Position is assigned on
// insert and preserves the configuration order for listings.
type StatusDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
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
	Position              int64 `gorm:"autoIncrement;uniqueIndex"`
}

// TableName specifies the database table name for status entities.
func (StatusDTO) TableName() string {
	return "order_statuses"
}

// TransitionDTO represents one directed edge of the transition graph,
// unique per ordered (from, to) pair.
type TransitionDTO struct {
	FromStatusID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ToStatusID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Label              string
	IsScanningRequired bool
	Position           int64 `gorm:"autoIncrement;uniqueIndex"`
}

// TableName specifies the database table name for transition edges.
func (TransitionDTO) TableName() string {
	return "status_transitions"
}

// statusFromDomain converts a status to its database representation.
func statusFromDomain(s *status.OrderStatus) StatusDTO {
	actions := s.Actions()
	return StatusDTO{
		ID:                    s.ID().Bytes(),
		Name:                  s.Name(),
		Color:                 s.Color(),
		IsDefault:             s.IsDefault(),
		IsExplanationRequired: s.IsExplanationRequired(),
		ExplanationLabel:      s.ExplanationLabel(),
		ReserveStock:          actions.ReserveStock,
		ReleaseStock:          actions.ReleaseStock,
		ReduceStock:           actions.ReduceStock,
		IncreaseStock:         actions.IncreaseStock,
		MarkAsDelivered:       actions.MarkAsDelivered,
		MarkAsRefunded:        actions.MarkAsRefunded,
		SendNotification:      actions.SendNotification,
	}
}

// statusToDomain converts a database row back to a validated status.
func statusToDomain(dto StatusDTO) (*status.OrderStatus, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return status.NewOrderStatus(
		id,
		dto.Name,
		dto.Color,
		dto.IsDefault,
		dto.IsExplanationRequired,
		dto.ExplanationLabel,
		status.ActionFlags{
			ReserveStock:     dto.ReserveStock,
			ReleaseStock:     dto.ReleaseStock,
			ReduceStock:      dto.ReduceStock,
			IncreaseStock:    dto.IncreaseStock,
			MarkAsDelivered:  dto.MarkAsDelivered,
			MarkAsRefunded:   dto.MarkAsRefunded,
			SendNotification: dto.SendNotification,
		},
	)
}

// transitionFromDomain converts a transition edge to its database representation.
func transitionFromDomain(t status.Transition) TransitionDTO {
	return TransitionDTO{
		FromStatusID:       t.FromID().Bytes(),
		ToStatusID:         t.ToID().Bytes(),
		Label:              t.Label(),
		IsScanningRequired: t.IsScanningRequired(),
	}
}

// transitionToDomain converts a database row back to a validated edge.
func transitionToDomain(dto TransitionDTO) (status.Transition, error) {
	fromID, err := kernel.UUIDFromBytes(dto.FromStatusID[:])
	if err != nil {
		return status.Transition{}, err
	}
	toID, err := kernel.UUIDFromBytes(dto.ToStatusID[:])
	if err != nil {
		return status.Transition{}, err
	}

	return status.NewTransition(fromID, toID, dto.Label, dto.IsScanningRequired)
}
