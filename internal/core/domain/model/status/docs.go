// Package status models the operator-configured order lifecycle: the registry
// of order statuses and the directed graph of transitions between them.
//
// Statuses and transitions are data, not code. Operators author new statuses
// and edges at runtime through the configuration screens, so no enum of states
// is compiled into the binary. Each status carries declarative action flags
// (stock reservation, release, reduction, replenishment, delivery and refund
// stamping, customer notification) interpreted by the transition applier, and
// each edge may require barcode scan reconciliation before submission.
//
// The Graph type is the integrity boundary: it validates the whole
// configuration at construction time, which corresponds to configuration-write
// time in the application. Everything downstream (validators, appliers,
// queries) reads the graph without re-checking referential integrity.
package status
