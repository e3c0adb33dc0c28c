// Package guard provides the constructor-guard pattern used by commands,
// queries and value objects to ensure instances are only created through
// their designated constructors, never as zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// supplied, so validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed objects from zero
// values. Embed one in a struct and set it in the constructor:
//
//	type StartStepCommand struct {
//	    stepID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewStartStepCommand(stepID kernel.UUID) (StartStepCommand, error) {
//	    ...
//	    return StartStepCommand{stepID: stepID, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object went through its constructor,
// otherwise the provided error (or ErrDefaultConstructorGuard when nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
