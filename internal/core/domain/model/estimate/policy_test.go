package estimate

import (
	"testing"

	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissivePolicy(t *testing.T) {
	p := PermissivePolicy{}
	require.NoError(t, p.Check(ConditionUnknown, ConditionL))
	require.NoError(t, p.Check(ConditionL, ConditionD))
	require.Error(t, p.Check(ConditionD, ConditionUnknown))
}

func TestSequentialPolicy(t *testing.T) {
	testCases := []struct {
		previous Condition
		next     Condition
		allowed  bool
	}{
		{ConditionUnknown, ConditionD, true},
		{ConditionUnknown, ConditionE, false},
		{ConditionD, ConditionD, true},
		{ConditionD, ConditionE, true},
		{ConditionD, ConditionF, false},
		{ConditionE, ConditionF, true},
		{ConditionE, ConditionG, true},
		{ConditionF, ConditionG, true},
		{ConditionF, ConditionL, true},
		{ConditionG, ConditionE, false},
		{ConditionE, ConditionL, false},
	}

	for _, tc := range testCases {
		t.Run(tc.previous.String()+"->"+tc.next.String(), func(t *testing.T) {
			err := SequentialPolicy{}.Check(tc.previous, tc.next)
			if tc.allowed {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrInvariantViolated)
		})
	}
}

func TestPolicyFor(t *testing.T) {
	assert.IsType(t, SequentialPolicy{}, PolicyFor(true))
	assert.IsType(t, PermissivePolicy{}, PolicyFor(false))
}

func TestSequentialEstimate(t *testing.T) {
	e := mustEstimate(t, SequentialPolicy{}, content(t, ConditionD, item(t, "1", "0", "1", PartyOwner, 1)))

	_, err := e.Revise(content(t, ConditionG, item(t, "1", "0", "1", PartyOwner, 1)), SequentialPolicy{}, t0)
	require.ErrorIs(t, err, errs.ErrInvariantViolated)
	assert.Len(t, e.Revisions(), 1)
}
