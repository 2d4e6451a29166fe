package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("Depot Party", "DEPOT0001")

		assert.Equal(t, "Depot Party", err.ParamName)
		assert.Equal(t, "DEPOT0001", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: Depot Party DEPOT0001 does not exist", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("redelivery", "AHAMG33141", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: redelivery AHAMG33141 does not exist (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("revision", 4)
		assert.Equal(t, "object not found: revision 4 does not exist", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("unitNumber")

		assert.Equal(t, "unitNumber", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: unitNumber", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("currency", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: currency (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 150, 1, 120)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 120, err.Max)
		assert.Equal(t, "value is invalid: 150 is quantity, min value is 1, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("hours", -5, 0, 100, cause)

		assert.Equal(t,
			"value is invalid: -5 is hours, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("approvalDate")

	assert.Equal(t, "approvalDate", err.ParamName)
	assert.Equal(t, "value is required: approvalDate", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("approvalDate", errors.New("zero time"))
	assert.Equal(t, "value is required: approvalDate (cause: zero time)", withCause.Error())
}

func TestRevisionIsInvalidError(t *testing.T) {
	err := errs.NewRevisionIsInvalidError("revision")
	assert.Equal(t, "revision is invalid: revision", err.Error())
	require.ErrorIs(t, err, errs.ErrRevisionIsInvalid)

	withCause := errs.NewRevisionIsInvalidErrorWithCause("revision", errors.New("2 is not 3"))
	assert.Equal(t, "revision is invalid: revision (cause: 2 is not 3)", withCause.Error())
}

func TestConflictError(t *testing.T) {
	t.Run("already exists", func(t *testing.T) {
		err := errs.NewAlreadyExistsError("redelivery", "AHAMG33141")
		assert.Equal(t, "conflict: redelivery AHAMG33141 already exists", err.Error())
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("does not exist", func(t *testing.T) {
		err := errs.NewDoesNotExistError("release", "REL0001")
		assert.Equal(t, "conflict: release REL0001 does not exist", err.Error())
	})
}

func TestInvariantViolatedError(t *testing.T) {
	err := errs.NewInvariantViolatedError("Customer", "must carry a companyId or a code")
	assert.Equal(t, "invariant violated: Customer must carry a companyId or a code", err.Error())
	require.ErrorIs(t, err, errs.ErrInvariantViolated)

	bare := errs.NewInvariantViolatedError("", "total does not match line items")
	assert.Equal(t, "invariant violated: total does not match line items", bare.Error())
}

func TestValidationError(t *testing.T) {
	err := errs.NewValidationError(
		errs.FieldViolation{Field: "redeliveryNumber", Message: "is required"},
		errs.FieldViolation{Field: "details[0].units[0].unitNumber", Message: "must be a valid unit number"},
	)

	assert.Equal(t,
		"validation rejected: redeliveryNumber: is required; details[0].units[0].unitNumber: must be a valid unit number",
		err.Error())
	require.ErrorIs(t, err, errs.ErrValidationRejected)
}

func TestCodeOf(t *testing.T) {
	testCases := []struct {
		err      error
		expected string
	}{
		{nil, ""},
		{errs.NewObjectNotFoundError("Depot Party", "X"), errs.CodeNotFound},
		{errs.NewValueIsRequiredError("x"), errs.CodeValidation},
		{errs.NewValueIsInvalidError("x"), errs.CodeValidation},
		{errs.NewValueIsOutOfRangeError("x", 1, 2, 3), errs.CodeValidation},
		{errs.NewValidationError(), errs.CodeValidation},
		{errs.NewAlreadyExistsError("x", 1), errs.CodeConflict},
		{errs.NewInvariantViolatedError("Customer", "x"), errs.CodeInvariant},
		{fmt.Errorf("wrapped: %w", errs.NewDoesNotExistError("x", 1)), errs.CodeConflict},
		{errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsInvalidError("b")), errs.CodeValidation},
		{errors.New("boom"), errs.CodeInternal},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, errs.CodeOf(tc.err))
	}
}
