package workorder

import (
	"errors"
	"fmt"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrUnitIsNotConstructed = errors.New("Unit must be created via NewUnit constructor")

// UnitStatus tracks a unit authorised for repair.
//
//	TIED ──┬──> REPAIRED
//	       └──> REMOVED
type UnitStatus int

const (
	UnitUnknown UnitStatus = iota
	UnitTied
	UnitRemoved
	UnitRepaired
)

func getUnitStatusStrings() map[UnitStatus]string {
	return map[UnitStatus]string{
		UnitUnknown:  "UNKNOWN",
		UnitTied:     "TIED",
		UnitRemoved:  "REMOVED",
		UnitRepaired: "REPAIRED",
	}
}

func ParseUnitStatus(s string) (UnitStatus, error) {
	for k, v := range getUnitStatusStrings() {
		if v == s && k != UnitUnknown {
			return k, nil
		}
	}
	return UnitUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a work order unit status", s))
}

func (s UnitStatus) String() string {
	if v, ok := getUnitStatusStrings()[s]; ok {
		return v
	}
	return getUnitStatusStrings()[UnitUnknown]
}

func (s UnitStatus) Validate() error {
	if s < UnitTied || s > UnitRepaired {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s UnitStatus) Repair() (UnitStatus, error) {
	if s != UnitTied {
		return s, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not a valid status to repair", s))
	}
	return UnitRepaired, nil
}

func (s UnitStatus) Remove() (UnitStatus, error) {
	if s != UnitTied {
		return s, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not a valid status to remove", s))
	}
	return UnitRemoved, nil
}

// Unit is a container named on a work order.
type Unit struct {
	unitNumber kernel.UnitNumber
	status     UnitStatus
	repairedAt *time.Time
	guard      guard.ConstructorGuard
}

func NewUnit(unitNumber kernel.UnitNumber) (Unit, error) {
	return RestoreUnit(unitNumber, UnitTied, nil)
}

func RestoreUnit(unitNumber kernel.UnitNumber, status UnitStatus, repairedAt *time.Time) (Unit, error) {
	if err := errors.Join(unitNumber.Validate(), status.Validate()); err != nil {
		return Unit{}, err
	}
	u := Unit{unitNumber: unitNumber, status: status, guard: guard.NewConstructorGuard()}
	if repairedAt != nil {
		v := repairedAt.UTC()
		u.repairedAt = &v
	}
	return u, nil
}

func (u Unit) Validate() error               { return u.guard.Validate(ErrUnitIsNotConstructed) }
func (u Unit) UnitNumber() kernel.UnitNumber { return u.unitNumber }
func (u Unit) Status() UnitStatus            { return u.status }

func (u Unit) RepairedAt() *time.Time {
	if u.repairedAt == nil {
		return nil
	}
	v := *u.repairedAt
	return &v
}
