package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error in this package unwraps to one of them,
// so callers classify failures with errors.Is.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrRevisionIsInvalid  = errors.New("revision is invalid")
	ErrConflict           = errors.New("conflict")
	ErrInvariantViolated  = errors.New("invariant violated")
	ErrValidationRejected = errors.New("validation rejected")
)

// ObjectNotFoundError reports that a referenced business key does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %s %s does not exist", ErrObjectNotFound, e.ParamName, sanitize(e.ID))
	return withCause(msg, e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that fails a declared constraint.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min..Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// RevisionIsInvalidError reports an estimate revision that does not follow
// the latest stored one.
type RevisionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewRevisionIsInvalidError(paramName string) *RevisionIsInvalidError {
	return &RevisionIsInvalidError{ParamName: paramName}
}

func NewRevisionIsInvalidErrorWithCause(paramName string, cause error) *RevisionIsInvalidError {
	return &RevisionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *RevisionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrRevisionIsInvalid, e.ParamName), e.Cause)
}

func (e *RevisionIsInvalidError) Unwrap() error {
	return ErrRevisionIsInvalid
}

// ConflictError reports a create of an existing business key or an update of
// a missing one.
type ConflictError struct {
	ParamName string
	ID        any
	Reason    string
}

func NewAlreadyExistsError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Reason: "already exists"}
}

func NewDoesNotExistError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Reason: "does not exist"}
}

func NewConflictError(paramName string, id any, reason string) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Reason: reason}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s %s", ErrConflict, e.ParamName, sanitize(e.ID), e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InvariantViolatedError reports a cross-field rule failure. Role names the
// referencing context ("Customer", "Recipient"), and may be empty.
type InvariantViolatedError struct {
	Role string
	Rule string
}

func NewInvariantViolatedError(role, rule string) *InvariantViolatedError {
	return &InvariantViolatedError{Role: role, Rule: rule}
}

func (e *InvariantViolatedError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("%s: %s", ErrInvariantViolated, e.Rule)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvariantViolated, e.Role, e.Rule)
}

func (e *InvariantViolatedError) Unwrap() error {
	return ErrInvariantViolated
}

// FieldViolation is one failed constraint of a candidate record.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation of a candidate record in field
// declaration order.
type ValidationError struct {
	Violations []FieldViolation
}

func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidationRejected, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationRejected
}

// Short rejection codes exposed to callers.
const (
	CodeNotFound   = "ERR001"
	CodeValidation = "ERR002"
	CodeConflict   = "ERR003"
	CodeInvariant  = "ERR004"
	CodeInternal   = "ERR999"
)

// CodeOf classifies err into a short rejection code.
func CodeOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrInvariantViolated):
		return CodeInvariant
	case errors.Is(err, ErrValidationRejected),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrRevisionIsInvalid):
		return CodeValidation
	default:
		return CodeInternal
	}
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, cause)
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
}
