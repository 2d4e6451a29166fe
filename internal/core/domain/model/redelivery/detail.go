package redelivery

import (
	"errors"
	"fmt"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrDetailIsNotConstructed = errors.New("Detail must be created via NewDetail constructor")

const (
	MinQuantity = 1
	MaxQuantity = 9999
)

// Detail groups the units a customer returns under one contract and equipment type.
// The detail owns its units; they are replaced together with it.
type Detail struct {
	customer           party.Ref
	contract           string
	equipment          string
	insuranceCoverage  party.Ref
	inspectionCriteria string
	billingParty       party.Ref
	quantity           int
	units              []Unit
	guard              guard.ConstructorGuard
}

// NewDetail validates the detail and its units. At most quantity units may be active.
func NewDetail(
	customer party.Ref,
	contract, equipment string,
	insuranceCoverage party.Ref,
	inspectionCriteria string,
	billingParty party.Ref,
	quantity int,
	units []Unit,
) (Detail, error) {
	d := Detail{
		customer:          customer,
		insuranceCoverage: insuranceCoverage,
		billingParty:      billingParty,
		guard:             guard.NewConstructorGuard(),
	}

	var errContract, errEquipment, errCriteria, errQuantity error
	d.contract, errContract = kernel.RequiredText("contract", contract, kernel.KeyMaxLength)
	d.equipment, errEquipment = kernel.RequiredText("equipment", equipment, kernel.CodeMaxLength)
	d.inspectionCriteria, errCriteria = kernel.BoundedText("inspectionCriteria", inspectionCriteria, kernel.KeyMaxLength)
	if quantity < MinQuantity || quantity > MaxQuantity {
		errQuantity = errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, MaxQuantity)
	}

	if err := errors.Join(
		advice.RequiredRef("customer", customer),
		errContract,
		errEquipment,
		errCriteria,
		errQuantity,
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

func (d Detail) Validate() error {
	return d.guard.Validate(ErrDetailIsNotConstructed)
}

func (d Detail) Customer() party.Ref          { return d.customer }
func (d Detail) Contract() string             { return d.contract }
func (d Detail) Equipment() string            { return d.equipment }
func (d Detail) InsuranceCoverage() party.Ref { return d.insuranceCoverage }
func (d Detail) InspectionCriteria() string   { return d.inspectionCriteria }
func (d Detail) BillingParty() party.Ref      { return d.billingParty }
func (d Detail) Quantity() int                { return d.quantity }

func (d Detail) Units() []Unit {
	out := make([]Unit, len(d.units))
	copy(out, d.units)
	return out
}

// Progress counts active (non-removed) and turned in units.
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

func (d *Detail) setUnits(units []Unit) error {
	seen := make(map[string]struct{}, len(units))
	var all []error
	for i, u := range units {
		if err := u.Validate(); err != nil {
			all = append(all, fmt.Errorf("units[%d]: %w", i, err))
			continue
		}
		if _, dup := seen[u.unitNumber.String()]; dup {
			all = append(all, errs.NewInvariantViolatedError("",
				fmt.Sprintf("unit %s is listed twice", u.unitNumber)))
			continue
		}
		seen[u.unitNumber.String()] = struct{}{}
	}
	if err := errors.Join(all...); err != nil {
		return err
	}
	d.units = append([]Unit(nil), units...)
	return nil
}
