// Package guard lets value objects, aggregates, commands and queries tell a
// constructed instance apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created through
// their constructor. Its zero value reports "not constructed".
//
// Example:
//
//	var ErrAmountIsNotConstructed = errors.New("Amount must be created via NewAmount")
//
//	type Amount struct {
//	    value decimal.Decimal
//	    guard guard.ConstructorGuard
//	}
//
//	func (a Amount) Validate() error {
//	    return a.guard.Validate(ErrAmountIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owner was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
