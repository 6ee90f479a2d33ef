package services

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/scan"
	"backoffice/internal/core/domain/model/status"
)

var (
	// ErrIllegalTransition is returned when the transition graph carries no
	// edge from the order's current status to the requested target.
	ErrIllegalTransition = errors.New("no transition is configured from the current status to the target status")

	// ErrExplanationRequired is returned when the target status requires a
	// written justification and none was provided.
	ErrExplanationRequired = errors.New("target status requires an explanation")

	// ErrScanIncomplete is returned when the requested edge requires barcode
	// reconciliation and the scan session has not covered every line item.
	ErrScanIncomplete = errors.New("scan reconciliation is not complete")
)

// ValidationResult is the outcome of checking a requested transition against
// the graph and its gates. Target and Edge are resolved whenever the request
// referenced an existing status; Reasons collects every gate that failed, so
// the operator sees all outstanding requirements at once rather than one per
// attempt.
type ValidationResult struct {
	// Target is the status being entered, resolved from the registry.
	Target *status.OrderStatus

	// Edge is the configured transition being taken. Zero when Reasons
	// contains ErrIllegalTransition.
	Edge status.Transition

	// Reasons holds every failed check: ErrIllegalTransition,
	// ErrExplanationRequired, ErrScanIncomplete. Empty means the
	// transition may be applied.
	Reasons []error
}

// OK reports whether every check passed and the transition may be applied.
func (r ValidationResult) OK() bool {
	return len(r.Reasons) == 0
}

// Err joins the failed checks into one error, nil when everything passed.
func (r ValidationResult) Err() error {
	return errors.Join(r.Reasons...)
}

// TransitionValidator is a domain service answering one question: may this
// order move to that status right now? It checks the requested move against
// the transition graph and the two gates a transition can carry:
//
//   - the explanation gate, declared on the target status: entering it
//     requires a non-blank written justification
//   - the scanning gate, declared on the edge: taking it requires a scan
//     session that has reconciled every line item
//
// The gates are independent and combinable; each is checked on its own and
// all failures are reported together. The validator performs no writes and
// holds no state, so the same check serves both the interactive dialog
// (enabling the submit button) and the transition applier's authoritative
// re-verification before commit.
type TransitionValidator struct{}

// NewTransitionValidator creates a new TransitionValidator instance.
func NewTransitionValidator() TransitionValidator {
	return TransitionValidator{}
}

// Validate checks whether the order may move to the target status.
//
// Parameters:
//   - o: The order requesting the move (must be valid)
//   - graph: The configured status registry and transition edges
//   - toStatusID: The requested target status
//   - explanation: Operator justification; blank counts as absent
//   - session: Scan reconciliation state, nil when no scanning happened
//
// Returns:
//   - ValidationResult: Resolved target, edge, and every failed gate
//   - error: Structural failures only — invalid order or graph, or a target
//     status that does not exist in the registry
//
// A missing edge, a missing explanation, and incomplete scanning are business
// outcomes reported through ValidationResult.Reasons, not errors. When the
// edge does not exist the gates are not evaluated: without an edge there is
// nothing to read the scanning requirement from.
func (v TransitionValidator) Validate(
	o *order.Order,
	graph *status.Graph,
	toStatusID kernel.UUID,
	explanation string,
	session *scan.Session,
) (ValidationResult, error) {
	if err := errors.Join(o.Validate(), graph.Validate()); err != nil {
		return ValidationResult{}, err
	}

	target, err := graph.Find(toStatusID)
	if err != nil {
		return ValidationResult{}, err
	}

	result := ValidationResult{Target: target}

	edge, ok := graph.FindTransition(o.CurrentStatusID(), toStatusID)
	if !ok {
		result.Reasons = append(result.Reasons, ErrIllegalTransition)
		return result, nil
	}
	result.Edge = edge

	if target.IsExplanationRequired() && strings.TrimSpace(explanation) == "" {
		result.Reasons = append(result.Reasons, ErrExplanationRequired)
	}

	if edge.IsScanningRequired() && (session == nil || !session.IsSubmittable()) {
		result.Reasons = append(result.Reasons, ErrScanIncomplete)
	}

	return result, nil
}

// CanSubmit reports whether the transition would currently pass validation.
// This is the predicate behind the dialog's submit button; it swallows
// structural errors as "not submittable" since the dialog cannot act on them.
func (v TransitionValidator) CanSubmit(
	o *order.Order,
	graph *status.Graph,
	toStatusID kernel.UUID,
	explanation string,
	session *scan.Session,
) bool {
	result, err := v.Validate(o, graph, toStatusID, explanation, session)
	return err == nil && result.OK()
}
