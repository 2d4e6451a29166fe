package release

import (
	"fmt"

	"depot/internal/pkg/errs"
)

// UnitStatus tracks a container named on a release.
//
//	CANDIDATE ──> TIED ──> LOT
//	    │           │
//	    └───────────┴──> REMOVED
//
// A candidate may also be lotted directly. Deleting the gate OUT record puts
// a lotted unit back to TIED.
type UnitStatus int

const (
	UnitUnknown UnitStatus = iota
	UnitTied
	UnitRemoved
	// UnitLotted left the depot through the gate. Terminal unless the gate record is deleted.
	UnitLotted
	// UnitCandidate was proposed by the depot and not yet confirmed.
	UnitCandidate
)

func getUnitStatusStrings() map[UnitStatus]string {
	return map[UnitStatus]string{
		UnitUnknown:   "UNKNOWN",
		UnitTied:      "TIED",
		UnitRemoved:   "REMOVED",
		UnitLotted:    "LOT",
		UnitCandidate: "CANDIDATE",
	}
}

func ParseUnitStatus(s string) (UnitStatus, error) {
	for k, v := range getUnitStatusStrings() {
		if v == s && k != UnitUnknown {
			return k, nil
		}
	}
	return UnitUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a release unit status", s))
}

func (s UnitStatus) String() string {
	if v, ok := getUnitStatusStrings()[s]; ok {
		return v
	}
	return getUnitStatusStrings()[UnitUnknown]
}

func (s UnitStatus) Validate() error {
	if s < UnitTied || s > UnitCandidate {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s UnitStatus) IsTerminal() bool {
	return s == UnitLotted
}

func (s UnitStatus) Tie() (UnitStatus, error) {
	if s != UnitCandidate {
		return s, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not a valid status to tie", s))
	}
	return UnitTied, nil
}

func (s UnitStatus) Lot() (UnitStatus, error) {
	if s != UnitTied && s != UnitCandidate {
		return s, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not a valid status to lot", s))
	}
	return UnitLotted, nil
}

func (s UnitStatus) Remove() (UnitStatus, error) {
	if s != UnitTied && s != UnitCandidate {
		return s, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not a valid status to remove", s))
	}
	return UnitRemoved, nil
}

func (s UnitStatus) RevertLot() (UnitStatus, error) {
	if s != UnitLotted {
		return s, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not a valid status to revert", s))
	}
	return UnitTied, nil
}
