// Package guard implements the constructor-guard pattern used by domain
// value objects and entities to reject zero-value instances that bypassed
// their constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate
// when a nil error is passed as the validation error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether a struct was created through its designated
// constructor or as a zero value. Embedding a guard in a domain object and
// checking it in Validate keeps invariants intact when objects are
// reconstructed from persistence or deserialized.
//
// Example usage:
//
//	type Token struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewToken(value string) (Token, error) {
//	    if value == "" {
//	        return Token{}, errors.New("value is required")
//	    }
//	    return Token{value: value, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t Token) Validate() error {
//	    return t.guard.Validate(errTokenNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as properly
// constructed. Call it in every constructor of a guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was created through its constructor.
// For zero-value guards it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
