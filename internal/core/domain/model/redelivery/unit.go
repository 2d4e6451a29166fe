package redelivery

import (
	"errors"
	"time"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrUnitIsNotConstructed = errors.New("Unit must be created via NewUnit constructor")

// Unit is a container expected back under a redelivery detail.
type Unit struct {
	unitNumber         kernel.UnitNumber
	manufactureDate    time.Time
	lastOnHireDate     *time.Time
	lastOnHireLocation string
	status             UnitStatus
	billingParty       party.Ref
	guard              guard.ConstructorGuard
}

// NewUnit creates a unit in TIED status.
func NewUnit(
	unitNumber kernel.UnitNumber,
	manufactureDate time.Time,
	lastOnHireDate *time.Time,
	lastOnHireLocation string,
	billingParty party.Ref,
) (Unit, error) {
	return RestoreUnit(unitNumber, manufactureDate, lastOnHireDate, lastOnHireLocation, UnitTied, billingParty)
}

func RestoreUnit(
	unitNumber kernel.UnitNumber,
	manufactureDate time.Time,
	lastOnHireDate *time.Time,
	lastOnHireLocation string,
	status UnitStatus,
	billingParty party.Ref,
) (Unit, error) {
	u := Unit{guard: guard.NewConstructorGuard(), status: status}

	var errLocation, errManufacture error
	u.lastOnHireLocation, errLocation = kernel.BoundedText("lastOnHireLocation", lastOnHireLocation, kernel.NameMaxLength)
	if manufactureDate.IsZero() {
		errManufacture = errs.NewValueIsRequiredError("manufactureDate")
	}

	if err := errors.Join(
		unitNumber.Validate(),
		errManufacture,
		errLocation,
		status.Validate(),
		advice.RequiredRef("billingParty", billingParty),
	); err != nil {
		return Unit{}, err
	}

	u.unitNumber = unitNumber
	u.manufactureDate = manufactureDate.UTC()
	if lastOnHireDate != nil {
		v := lastOnHireDate.UTC()
		u.lastOnHireDate = &v
	}
	u.billingParty = billingParty
	return u, nil
}

func (u Unit) Validate() error {
	return u.guard.Validate(ErrUnitIsNotConstructed)
}

func (u Unit) UnitNumber() kernel.UnitNumber { return u.unitNumber }
func (u Unit) ManufactureDate() time.Time    { return u.manufactureDate }
func (u Unit) LastOnHireLocation() string    { return u.lastOnHireLocation }
func (u Unit) Status() UnitStatus            { return u.status }
func (u Unit) BillingParty() party.Ref       { return u.billingParty }

func (u Unit) LastOnHireDate() *time.Time {
	if u.lastOnHireDate == nil {
		return nil
	}
	v := *u.lastOnHireDate
	return &v
}
