package guard_test

import (
	"errors"
	"sync"
	"testing"

	"depot/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("Redelivery must be created via NewRedelivery")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type unitNumber struct {
		value string
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("unit number must be created via its constructor")
	newUnitNumber := func(v string) (unitNumber, error) {
		if v == "" {
			return unitNumber{}, errors.New("unit number is required")
		}
		return unitNumber{value: v, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes", func(t *testing.T) {
		u, err := newUnitNumber("CSQU3054383")
		require.NoError(t, err)
		require.NoError(t, u.guard.Validate(errNotConstructed))
	})

	t.Run("failed_construction_returns_zero_value", func(t *testing.T) {
		u, err := newUnitNumber("")
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, u.guard.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(validationError))
		}()
	}
	wg.Wait()
}
