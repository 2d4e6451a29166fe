package kernel_test

import (
	"testing"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompanyID(t *testing.T) {
	t.Run("should accept nine uppercase alphanumerics", func(t *testing.T) {
		id, err := kernel.NewCompanyID("DEPOT0001")
		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, "DEPOT0001", id.String())
	})

	for _, raw := range []string{"DEPOT001", "DEPOT00001", "depot0001", "DEPOT-001"} {
		t.Run("should reject "+raw, func(t *testing.T) {
			_, err := kernel.NewCompanyID(raw)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}

	t.Run("should require a value", func(t *testing.T) {
		_, err := kernel.NewCompanyID("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var id kernel.CompanyID
		assert.True(t, id.IsZero())
		assert.Equal(t, kernel.ErrCompanyIDIsNotConstructed, id.Validate())
	})
}

func TestNewUnitNumber(t *testing.T) {
	valid := []string{"CSQU3054383", "CSQU305438", "TRLU12X456", "ABCDXXXXXXZ"}
	for _, raw := range valid {
		t.Run("should accept "+raw, func(t *testing.T) {
			u, err := kernel.NewUnitNumber(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, u.String())
		})
	}

	invalid := []string{"CSQ3054383", "csqu3054383", "CSQU30543", "CSQU30543831", "CSQU3054A83", "1SQU3054383"}
	for _, raw := range invalid {
		t.Run("should reject "+raw, func(t *testing.T) {
			_, err := kernel.NewUnitNumber(raw)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unitNumber")
		})
	}
}

func TestNewCurrency(t *testing.T) {
	c, err := kernel.NewCurrency("USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", c.String())

	_, err = kernel.NewCurrency("usd")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = kernel.NewCurrency("EURO")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCaller(t *testing.T) {
	assert.False(t, kernel.InternalCaller("jdoe").IsExternal())
	assert.True(t, kernel.ExternalCaller("").IsExternal())
	assert.Equal(t, "anonymous", kernel.ExternalCaller("").Name())
}
