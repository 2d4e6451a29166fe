package gate

import (
	"fmt"

	"depot/internal/pkg/errs"
)

// Condition is the state a unit was found in at the gate.
type Condition int

const (
	ConditionUnknown Condition = iota
	// ConditionSound is a non-damaged unit (A).
	ConditionSound
	// ConditionDamaged needs an estimate before reuse (D).
	ConditionDamaged
	// ConditionSold is leaving the fleet (S).
	ConditionSold
)

func getConditionStrings() map[Condition]string {
	return map[Condition]string{
		ConditionUnknown: "UNKNOWN",
		ConditionSound:   "A",
		ConditionDamaged: "D",
		ConditionSold:    "S",
	}
}

func ParseCondition(s string) (Condition, error) {
	for k, v := range getConditionStrings() {
		if v == s && k != ConditionUnknown {
			return k, nil
		}
	}
	return ConditionUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a gate condition", s))
}

func (c Condition) String() string {
	if v, ok := getConditionStrings()[c]; ok {
		return v
	}
	return getConditionStrings()[ConditionUnknown]
}

func (c Condition) Validate() error {
	if c < ConditionSound || c > ConditionSold {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid gate condition", c))
	}
	return nil
}

// Direction tells whether the unit entered or left the depot.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionIn
	DirectionOut
)

func getDirectionStrings() map[Direction]string {
	return map[Direction]string{
		DirectionUnknown: "UNKNOWN",
		DirectionIn:      "IN",
		DirectionOut:     "OUT",
	}
}

func ParseDirection(s string) (Direction, error) {
	for k, v := range getDirectionStrings() {
		if v == s && k != DirectionUnknown {
			return k, nil
		}
	}
	return DirectionUnknown, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a gate direction", s))
}

func (d Direction) String() string {
	if v, ok := getDirectionStrings()[d]; ok {
		return v
	}
	return getDirectionStrings()[DirectionUnknown]
}

func (d Direction) Validate() error {
	if d != DirectionIn && d != DirectionOut {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid gate direction", d))
	}
	return nil
}
