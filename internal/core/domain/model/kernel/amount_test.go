package kernel_test

import (
	"testing"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	t.Run("should accept zero and positive values", func(t *testing.T) {
		for _, raw := range []string{"0", "0.01", "358.20"} {
			a, err := kernel.NewAmount("materialCost", decimal.RequireFromString(raw))
			require.NoError(t, err)
			require.NoError(t, a.Validate())
		}
	})

	t.Run("should reject negative values", func(t *testing.T) {
		_, err := kernel.NewAmount("materialCost", decimal.RequireFromString("-0.01"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "materialCost")
	})
}

func TestAmount_Add(t *testing.T) {
	sum := kernel.MustAmount("9.95").Add(kernel.MustAmount("348.25"))
	assert.True(t, sum.IsEqual(kernel.MustAmount("358.2")))
	assert.Equal(t, "358.2", sum.String())
}

func TestZeroAmount(t *testing.T) {
	z := kernel.ZeroAmount()
	require.NoError(t, z.Validate())
	assert.True(t, z.Decimal().IsZero())

	var unset kernel.Amount
	assert.Equal(t, kernel.ErrAmountIsNotConstructed, unset.Validate())
}
