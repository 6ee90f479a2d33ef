package statusrepo

import (
	"context"

	"backoffice/internal/core/domain/model/status"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStatusRepository implements StatusRepository using GORM.
type GormStatusRepository struct {
	db *gorm.DB
}

// NewGormStatusRepository creates a new GORM status repository.
func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// GetGraph loads the whole registry and assembles a validated Graph.
// Construction re-checks every configuration invariant, so a corrupted
// table surfaces as an error here rather than as undefined behavior later.
func (r *GormStatusRepository) GetGraph(ctx context.Context) (*status.Graph, error) {
	statuses, transitions, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	return status.NewGraph(statuses, transitions)
}

// SaveStatus persists a status definition after validating the registry
// that would result from the write.
func (r *GormStatusRepository) SaveStatus(ctx context.Context, s *status.OrderStatus) error {
	if err := s.Validate(); err != nil {
		return err
	}

	statuses, transitions, err := r.load(ctx)
	if err != nil {
		return err
	}

	merged := make([]*status.OrderStatus, 0, len(statuses)+1)
	for _, existing := range statuses {
		if !existing.IsEqual(s) {
			merged = append(merged, existing)
		}
	}
	merged = append(merged, s)

	if _, err = status.NewGraph(merged, transitions); err != nil {
		return err
	}

	dto := statusFromDomain(s)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// SaveTransition persists a transition edge after validating the registry
// that would result from the write.
func (r *GormStatusRepository) SaveTransition(ctx context.Context, t status.Transition) error {
	if err := t.Validate(); err != nil {
		return err
	}

	statuses, transitions, err := r.load(ctx)
	if err != nil {
		return err
	}

	merged := make([]status.Transition, 0, len(transitions)+1)
	for _, existing := range transitions {
		if !existing.IsEqual(t) {
			merged = append(merged, existing)
		}
	}
	merged = append(merged, t)

	if _, err = status.NewGraph(statuses, merged); err != nil {
		return err
	}

	dto := transitionFromDomain(t)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "from_status_id"}, {Name: "to_status_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// load reads every status and edge in configuration order and converts
// them to domain objects.
func (r *GormStatusRepository) load(ctx context.Context) ([]*status.OrderStatus, []status.Transition, error) {
	var statusDTOs []StatusDTO
	if err := r.db.WithContext(ctx).Order("position").Find(&statusDTOs).Error; err != nil {
		return nil, nil, err
	}

	var transitionDTOs []TransitionDTO
	if err := r.db.WithContext(ctx).Order("position").Find(&transitionDTOs).Error; err != nil {
		return nil, nil, err
	}

	statuses := make([]*status.OrderStatus, 0, len(statusDTOs))
	for _, dto := range statusDTOs {
		s, err := statusToDomain(dto)
		if err != nil {
			return nil, nil, err
		}
		statuses = append(statuses, s)
	}

	transitions := make([]status.Transition, 0, len(transitionDTOs))
	for _, dto := range transitionDTOs {
		t, err := transitionToDomain(dto)
		if err != nil {
			return nil, nil, err
		}
		transitions = append(transitions, t)
	}

	return statuses, transitions, nil
}
