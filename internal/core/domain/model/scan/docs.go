// Package scan implements barcode scan reconciliation for scanning-gated
// status transitions: before such a transition may be submitted, every line
// item of the order must be physically scanned at least as many times as its
// ordered quantity.
//
// The package has two halves. Session is the per-attempt accumulator keyed by
// (order, transition attempt); it matches scan events against the order's
// required quantities and exposes the completion predicate the transition
// validator reads. Tokenizer frames raw keystrokes into barcode tokens,
// separating hardware wedge-scanner bursts from manual typing with an
// inter-key timeout so stale partial input never corrupts the next scan.
//
// Everything here is client-local accumulation: a session performs no
// persistent writes and holds no lock on the order. Cancelling the dialog
// discards the session with no side effects.
package scan
