package ports

import (
	"context"

	"backoffice/internal/core/domain/model/status"
)

// StatusRepository defines the persistence contract for the operator-configured
// status registry and transition edges.
type StatusRepository interface {
	// GetGraph loads every configured status and transition and assembles
	// them into a validated Graph. Configuration invariants (unique IDs,
	// exactly one default, valid edge endpoints) are re-checked during
	// assembly.
	GetGraph(ctx context.Context) (*status.Graph, error)

	// SaveStatus persists a status definition. The augmented registry is
	// re-validated as a whole Graph before the write; an invalid
	// configuration is rejected and nothing is persisted.
	SaveStatus(ctx context.Context, s *status.OrderStatus) error

	// SaveTransition persists a transition edge under the same write-time
	// Graph validation. The referenced statuses must already exist.
	SaveTransition(ctx context.Context, t status.Transition) error
}
