package release

import (
	"errors"
	"fmt"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var (
	ErrDetailIsNotConstructed    = errors.New("Detail must be created via NewDetail constructor")
	ErrCriterionIsNotConstructed = errors.New("Criterion must be created via NewCriterion constructor")
	ErrUnitIsNotConstructed      = errors.New("Unit must be created via NewUnit constructor")
)

const (
	MinQuantity = 1
	MaxQuantity = 9999
)

// Criterion is a named restriction on the units that may be released,
// for example "grade" = "CW" or "minYear" = "2018".
type Criterion struct {
	key   string
	value string
	guard guard.ConstructorGuard
}

func NewCriterion(key, value string) (Criterion, error) {
	c := Criterion{guard: guard.NewConstructorGuard()}
	var errKey, errValue error
	c.key, errKey = kernel.RequiredText("criteria.key", key, kernel.KeyMaxLength)
	c.value, errValue = kernel.RequiredText("criteria.value", value, kernel.NameMaxLength)
	if err := errors.Join(errKey, errValue); err != nil {
		return Criterion{}, err
	}
	return c, nil
}

func (c Criterion) Validate() error { return c.guard.Validate(ErrCriterionIsNotConstructed) }
func (c Criterion) Key() string     { return c.key }
func (c Criterion) Value() string   { return c.value }

// Unit is a container named on a release detail.
type Unit struct {
	unitNumber kernel.UnitNumber
	status     UnitStatus
	guard      guard.ConstructorGuard
}

// NewUnit creates a tied unit; depots propose units with NewCandidateUnit.
func NewUnit(unitNumber kernel.UnitNumber) (Unit, error) {
	return RestoreUnit(unitNumber, UnitTied)
}

func NewCandidateUnit(unitNumber kernel.UnitNumber) (Unit, error) {
	return RestoreUnit(unitNumber, UnitCandidate)
}

func RestoreUnit(unitNumber kernel.UnitNumber, status UnitStatus) (Unit, error) {
	if err := errors.Join(unitNumber.Validate(), status.Validate()); err != nil {
		return Unit{}, err
	}
	return Unit{unitNumber: unitNumber, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (u Unit) Validate() error               { return u.guard.Validate(ErrUnitIsNotConstructed) }
func (u Unit) UnitNumber() kernel.UnitNumber { return u.unitNumber }
func (u Unit) Status() UnitStatus            { return u.status }

// Detail groups released units of one customer, contract and equipment type.
// Criteria and units are owned by the detail.
type Detail struct {
	customer  party.Ref
	contract  string
	equipment string
	quantity  int
	criteria  []Criterion
	units     []Unit
	guard     guard.ConstructorGuard
}

func NewDetail(
	customer party.Ref,
	contract, equipment string,
	quantity int,
	criteria []Criterion,
	units []Unit,
) (Detail, error) {
	d := Detail{customer: customer, guard: guard.NewConstructorGuard()}

	var errContract, errEquipment, errQuantity error
	d.contract, errContract = kernel.RequiredText("contract", contract, kernel.KeyMaxLength)
	d.equipment, errEquipment = kernel.RequiredText("equipment", equipment, kernel.CodeMaxLength)
	if quantity < MinQuantity || quantity > MaxQuantity {
		errQuantity = errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, MaxQuantity)
	}

	if err := errors.Join(
		advice.RequiredRef("customer", customer),
		errContract,
		errEquipment,
		errQuantity,
		d.setCriteria(criteria),
		d.setUnits(units),
	); err != nil {
		return Detail{}, err
	}
	d.quantity = quantity

	if active := d.Progress().Active; active > quantity {
		return Detail{}, errs.NewInvariantViolatedError("",
			fmt.Sprintf("detail lists %d active units for a quantity of %d", active, quantity))
	}
	return d, nil
}

func (d Detail) Validate() error     { return d.guard.Validate(ErrDetailIsNotConstructed) }
func (d Detail) Customer() party.Ref { return d.customer }
func (d Detail) Contract() string    { return d.contract }
func (d Detail) Equipment() string   { return d.equipment }
func (d Detail) Quantity() int       { return d.quantity }

func (d Detail) Criteria() []Criterion {
	return append([]Criterion(nil), d.criteria...)
}

func (d Detail) Units() []Unit {
	return append([]Unit(nil), d.units...)
}

// Progress counts active (non-removed) and lotted units.
func (d Detail) Progress() advice.Progress {
	var p advice.Progress
	for _, u := range d.units {
		if u.status == UnitRemoved {
			continue
		}
		p.Active++
		if u.status.IsTerminal() {
			p.Terminal++
		}
	}
	return p
}

func (d *Detail) setCriteria(criteria []Criterion) error {
	seen := make(map[string]struct{}, len(criteria))
	for i, c := range criteria {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("criteria[%d]: %w", i, err)
		}
		if _, dup := seen[c.key]; dup {
			return errs.NewInvariantViolatedError("", fmt.Sprintf("criterion %s is listed twice", c.key))
		}
		seen[c.key] = struct{}{}
	}
	d.criteria = append([]Criterion(nil), criteria...)
	return nil
}

func (d *Detail) setUnits(units []Unit) error {
	seen := make(map[string]struct{}, len(units))
	for i, u := range units {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("units[%d]: %w", i, err)
		}
		if _, dup := seen[u.unitNumber.String()]; dup {
			return errs.NewInvariantViolatedError("", fmt.Sprintf("unit %s is listed twice", u.unitNumber))
		}
		seen[u.unitNumber.String()] = struct{}{}
	}
	d.units = append([]Unit(nil), units...)
	return nil
}
