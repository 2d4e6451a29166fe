package redelivery

import (
	"fmt"

	"depot/internal/pkg/errs"
)

// UnitStatus tracks a container named on a redelivery.
//
//	TIED ──┬──> TIN ──(gate deleted)──> TIED
//	       └──> REMOVED
type UnitStatus int

const (
	UnitUnknown UnitStatus = iota
	// UnitTied is a unit expected back at the depot.
	UnitTied
	// UnitRemoved was taken off the advice.
	UnitRemoved
	// UnitTurnedIn passed the gate in. Terminal unless the gate record is deleted.
	UnitTurnedIn
)

func getUnitStatusStrings() map[UnitStatus]string {
	return map[UnitStatus]string{
		UnitUnknown:  "UNKNOWN",
		UnitTied:     "TIED",
		UnitRemoved:  "REMOVED",
		UnitTurnedIn: "TIN",
	}
}

// ParseUnitStatus maps the stored code back to a status.
func ParseUnitStatus(s string) (UnitStatus, error) {
	for k, v := range getUnitStatusStrings() {
		if v == s && k != UnitUnknown {
			return k, nil
		}
	}
	return UnitUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a redelivery unit status", s))
}

func (s UnitStatus) String() string {
	if v, ok := getUnitStatusStrings()[s]; ok {
		return v
	}
	return getUnitStatusStrings()[UnitUnknown]
}

func (s UnitStatus) Validate() error {
	if s < UnitTied || s > UnitTurnedIn {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s UnitStatus) IsTerminal() bool {
	return s == UnitTurnedIn
}

func (s UnitStatus) TurnIn() (UnitStatus, error) {
	if s != UnitTied {
		return s, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not a valid status to turn in", s))
	}
	return UnitTurnedIn, nil
}

func (s UnitStatus) Remove() (UnitStatus, error) {
	if s != UnitTied {
		return s, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not a valid status to remove", s))
	}
	return UnitRemoved, nil
}

// RevertTurnIn undoes a turn in whose gate record was deleted.
func (s UnitStatus) RevertTurnIn() (UnitStatus, error) {
	if s != UnitTurnedIn {
		return s, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not a valid status to revert", s))
	}
	return UnitTied, nil
}
