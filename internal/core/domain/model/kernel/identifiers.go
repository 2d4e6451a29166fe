package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

// Shapes of EDI business keys. The validation engine reuses them for candidate records.
var (
	CompanyIDPattern  = regexp.MustCompile(`^[A-Z0-9]{9}$`)
	UnitNumberPattern = regexp.MustCompile(`^[A-Z]{4}[X0-9]{6}[A-Z0-9]?$`)
	CurrencyPattern   = regexp.MustCompile(`^[A-Z]{3}$`)
)

const (
	// CompanyIDLength is the fixed length of an EDI address.
	CompanyIDLength = 9
	// UnitNumberMaxLength is the maximum length of a container unit number.
	UnitNumberMaxLength = 11
)

var (
	ErrCompanyIDIsNotConstructed  = errors.New("CompanyID must be created via NewCompanyID")
	ErrUnitNumberIsNotConstructed = errors.New("UnitNumber must be created via NewUnitNumber")
	ErrCurrencyIsNotConstructed   = errors.New("Currency must be created via NewCurrency")
)

// CompanyID is the 9 character EDI address of a party.
type CompanyID struct {
	value string
	guard guard.ConstructorGuard
}

// NewCompanyID validates v against CompanyIDPattern.
func NewCompanyID(v string) (CompanyID, error) {
	if v == "" {
		return CompanyID{}, errs.NewValueIsRequiredError("companyId")
	}
	if !CompanyIDPattern.MatchString(v) {
		return CompanyID{}, errs.NewValueIsInvalidErrorWithCause(
			"companyId", fmt.Errorf("%q does not match %s", v, CompanyIDPattern))
	}
	return CompanyID{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (c CompanyID) Validate() error {
	return c.guard.Validate(ErrCompanyIDIsNotConstructed)
}

func (c CompanyID) String() string {
	return c.value
}

// IsZero reports whether the company id was left unset.
func (c CompanyID) IsZero() bool {
	return c.value == ""
}

func (c CompanyID) IsEqual(other CompanyID) bool {
	return c.value == other.value
}

// UnitNumber identifies a container: 4 letter owner code, 6 digit serial
// (X allowed as placeholder) and an optional check digit.
type UnitNumber struct {
	value string
	guard guard.ConstructorGuard
}

// NewUnitNumber validates v against UnitNumberPattern.
func NewUnitNumber(v string) (UnitNumber, error) {
	if v == "" {
		return UnitNumber{}, errs.NewValueIsRequiredError("unitNumber")
	}
	if len(v) > UnitNumberMaxLength || !UnitNumberPattern.MatchString(v) {
		return UnitNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"unitNumber", fmt.Errorf("%q does not match %s", v, UnitNumberPattern))
	}
	return UnitNumber{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (u UnitNumber) Validate() error {
	return u.guard.Validate(ErrUnitNumberIsNotConstructed)
}

func (u UnitNumber) String() string {
	return u.value
}

func (u UnitNumber) IsEqual(other UnitNumber) bool {
	return u.value == other.value
}

// Currency is an ISO 4217 style three letter code.
type Currency struct {
	value string
	guard guard.ConstructorGuard
}

func NewCurrency(v string) (Currency, error) {
	if v == "" {
		return Currency{}, errs.NewValueIsRequiredError("currency")
	}
	if !CurrencyPattern.MatchString(v) {
		return Currency{}, errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("%q is not three uppercase letters", v))
	}
	return Currency{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (c Currency) Validate() error {
	return c.guard.Validate(ErrCurrencyIsNotConstructed)
}

func (c Currency) String() string {
	return c.value
}
