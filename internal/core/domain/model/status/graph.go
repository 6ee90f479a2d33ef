package status

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	// ErrGraphIsNotConstructed is returned when a Graph instance was not
	// created through the NewGraph factory method.
	ErrGraphIsNotConstructed = errors.New("Graph must be created via NewGraph constructor")

	// ErrNoDefaultStatus indicates the registry carries no status flagged
	// as the initial status for new orders.
	ErrNoDefaultStatus = errors.New("exactly one status must be flagged as default, found none")

	// ErrMultipleDefaultStatuses indicates more than one status is flagged
	// as the initial status for new orders.
	ErrMultipleDefaultStatuses = errors.New("exactly one status must be flagged as default, found several")
)

// Graph is the status registry together with the directed transition edges
// between statuses. It is the single authority for which moves are legal:
// referential integrity between statuses and edges is enforced here, at
// construction, which is the configuration-write boundary. Reads never
// re-validate.
//
// The graph is immutable once constructed. Configuration changes build a new
// Graph; orders observe the swap on their next load.
//
// Terminal statuses are emergent: a status with zero outbound edges simply
// yields an empty AvailableFrom result, and callers present no actions.
type Graph struct {
	statuses  map[kernel.UUID]*OrderStatus
	outbound  map[kernel.UUID][]Transition
	ordered   []*OrderStatus
	defaultID kernel.UUID
	guard     guard.ConstructorGuard
}

// NewGraph builds a Graph from the configured statuses and transitions,
// validating the whole configuration:
//   - every status is valid and status IDs are unique
//   - exactly one status is flagged as default
//   - every edge is valid, references existing statuses on both endpoints,
//     and no ordered (from, to) pair appears twice
//
// Returns the constructed graph or the first configuration error found.
func NewGraph(statuses []*OrderStatus, transitions []Transition) (*Graph, error) {
	g := &Graph{
		statuses: make(map[kernel.UUID]*OrderStatus, len(statuses)),
		outbound: make(map[kernel.UUID][]Transition),
		ordered:  make([]*OrderStatus, 0, len(statuses)),
		guard:    guard.NewConstructorGuard(),
	}

	if len(statuses) == 0 {
		return nil, errs.NewValueIsRequiredError("statuses")
	}

	defaultCount := 0
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, exists := g.statuses[s.ID()]; exists {
			return nil, errs.NewValueIsInvalidErrorWithCause("statuses",
				fmt.Errorf("duplicate status id %s", s.ID()))
		}
		g.statuses[s.ID()] = s
		g.ordered = append(g.ordered, s)

		if s.IsDefault() {
			defaultCount++
			g.defaultID = s.ID()
		}
	}

	switch {
	case defaultCount == 0:
		return nil, ErrNoDefaultStatus
	case defaultCount > 1:
		return nil, ErrMultipleDefaultStatuses
	}

	seen := make(map[[2]kernel.UUID]struct{}, len(transitions))
	for _, t := range transitions {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, ok := g.statuses[t.FromID()]; !ok {
			return nil, errs.NewObjectNotFoundError("fromStatusId", t.FromID().String())
		}
		if _, ok := g.statuses[t.ToID()]; !ok {
			return nil, errs.NewObjectNotFoundError("toStatusId", t.ToID().String())
		}

		pair := [2]kernel.UUID{t.FromID(), t.ToID()}
		if _, dup := seen[pair]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("transitions",
				fmt.Errorf("duplicate transition from %s to %s", t.FromID(), t.ToID()))
		}
		seen[pair] = struct{}{}

		g.outbound[t.FromID()] = append(g.outbound[t.FromID()], t)
	}

	return g, nil
}

// Validate ensures the Graph was properly constructed.
func (g *Graph) Validate() error {
	if g == nil {
		return ErrGraphIsNotConstructed
	}
	return g.guard.Validate(ErrGraphIsNotConstructed)
}

// Default returns the status assigned to newly created orders.
func (g *Graph) Default() *OrderStatus {
	return g.statuses[g.defaultID]
}

// Find returns the status with the given identifier.
// Returns an ObjectNotFoundError when the id is not part of the registry.
func (g *Graph) Find(id kernel.UUID) (*OrderStatus, error) {
	s, ok := g.statuses[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("statusId", id.String())
	}
	return s, nil
}

// FindTransition returns the edge from one status to another, if configured.
func (g *Graph) FindTransition(fromID, toID kernel.UUID) (Transition, bool) {
	for _, t := range g.outbound[fromID] {
		if t.ToID().IsEqual(toID) {
			return t, true
		}
	}
	return Transition{}, false
}

// AvailableFrom returns the edges originating from the given status, in
// configuration order. An empty result means the status is effectively
// terminal and callers must present no actions.
func (g *Graph) AvailableFrom(fromID kernel.UUID) []Transition {
	edges := g.outbound[fromID]
	out := make([]Transition, len(edges))
	copy(out, edges)
	return out
}

// Statuses returns every configured status in registration order.
func (g *Graph) Statuses() []*OrderStatus {
	out := make([]*OrderStatus, len(g.ordered))
	copy(out, g.ordered)
	return out
}
