package estimate

import (
	"fmt"

	"depot/internal/pkg/errs"
)

// ConditionPolicy decides whether a revision may move the estimate from one
// condition to another. previous is ConditionUnknown for the first revision.
type ConditionPolicy interface {
	Check(previous, next Condition) error
}

// PermissivePolicy accepts any valid condition in any order.
type PermissivePolicy struct{}

func (PermissivePolicy) Check(_, next Condition) error {
	return next.Validate()
}

// SequentialPolicy walks the pipeline one stage at a time: the first revision
// starts at D, later revisions stay on their stage or advance by one.
type SequentialPolicy struct{}

func (SequentialPolicy) Check(previous, next Condition) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if previous == ConditionUnknown {
		if next != ConditionD {
			return errs.NewInvariantViolatedError("",
				fmt.Sprintf("first revision must start at condition D, got %s", next))
		}
		return nil
	}
	if delta := next.stage() - previous.stage(); delta < 0 || delta > 1 {
		return errs.NewInvariantViolatedError("",
			fmt.Sprintf("condition %s cannot follow %s", next, previous))
	}
	return nil
}

// PolicyFor returns SequentialPolicy when strict is set.
func PolicyFor(strict bool) ConditionPolicy {
	if strict {
		return SequentialPolicy{}
	}
	return PermissivePolicy{}
}
