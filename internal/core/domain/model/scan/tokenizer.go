package scan

import (
	"time"
)

// DefaultInterKeyTimeout is the largest gap between consecutive keystrokes
// still considered part of one scanner burst. Hardware wedge scanners type a
// whole barcode in a few milliseconds; a human typing digits pauses far
// longer. A buffered token older than this is presumed abandoned.
const DefaultInterKeyTimeout = 100 * time.Millisecond

// Tokenizer frames a keystroke stream into barcode tokens.
//
// Input may arrive as a burst of rapid keystrokes terminated by an end-of-scan
// marker (a keyboard-wedge scanner) or as manual single-character typing. The
// tokenizer cannot see the source, so it disambiguates by timing: when the gap
// between consecutive characters exceeds the inter-key timeout, any buffered
// but unterminated input is discarded before new characters accumulate. This
// keeps a stale half-typed token from corrupting the next scan.
//
// Only digit characters accumulate into the pending token; everything else is
// ignored. The explicit terminator (Flush, wired to carriage return) emits the
// pending token regardless of timeout state and resets the buffer.
//
// The tokenizer takes explicit timestamps instead of reading the clock, so
// burst timing is testable without simulating real keystroke delays.
type Tokenizer struct {
	timeout   time.Duration
	pending   []rune
	lastKeyAt time.Time
}

// NewTokenizer creates a tokenizer with the given inter-key timeout.
// A non-positive timeout selects DefaultInterKeyTimeout.
func NewTokenizer(timeout time.Duration) *Tokenizer {
	if timeout <= 0 {
		timeout = DefaultInterKeyTimeout
	}
	return &Tokenizer{timeout: timeout}
}

// Press feeds one keystroke observed at the given time. A gap larger than the
// inter-key timeout discards the stale pending buffer first; then the
// character is appended if it is a digit, otherwise dropped.
func (t *Tokenizer) Press(ch rune, at time.Time) {
	t.expire(at)

	if ch < '0' || ch > '9' {
		return
	}

	t.pending = append(t.pending, ch)
	t.lastKeyAt = at
}

// Flush emits the pending token and resets the buffer. This is the explicit
// end-of-scan terminator: it fires regardless of how much time passed since
// the last keystroke. Returns the token and true, or "" and false when
// nothing was pending.
func (t *Tokenizer) Flush(time.Time) (string, bool) {
	if len(t.pending) == 0 {
		return "", false
	}

	token := string(t.pending)
	t.pending = nil
	return token, true
}

// Pending returns the buffered, not yet terminated input. Diagnostic only.
func (t *Tokenizer) Pending() string {
	return string(t.pending)
}

// expire drops the pending buffer when the new keystroke arrives after the
// inter-key timeout.
func (t *Tokenizer) expire(at time.Time) {
	if len(t.pending) == 0 {
		return
	}
	if at.Sub(t.lastKeyAt) > t.timeout {
		t.pending = nil
	}
}

// Keypad couples a Tokenizer to a Session for the scan dialog's input loop:
// keystrokes go to Press, the end-of-scan marker to Enter, and every framed
// token is pushed through the session's reconciliation handling.
type Keypad struct {
	tokenizer *Tokenizer
	session   *Session
}

// NewKeypad creates a Keypad feeding the given session. A nil tokenizer
// selects a fresh one with the default inter-key timeout.
func NewKeypad(tokenizer *Tokenizer, session *Session) *Keypad {
	if tokenizer == nil {
		tokenizer = NewTokenizer(0)
	}
	return &Keypad{tokenizer: tokenizer, session: session}
}

// Press feeds one keystroke into the framing buffer.
func (k *Keypad) Press(ch rune, at time.Time) {
	k.tokenizer.Press(ch, at)
}

// Enter terminates the pending token and, when one was buffered, scans it
// into the session. Returns the scan result and whether a token was emitted.
func (k *Keypad) Enter(at time.Time) (Result, bool) {
	token, ok := k.tokenizer.Flush(at)
	if !ok {
		return Result{}, false
	}
	return k.session.Scan(token), true
}
