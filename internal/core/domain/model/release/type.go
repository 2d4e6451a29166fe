package release

import (
	"fmt"

	"depot/internal/pkg/errs"
)

// Type is the commercial reason for a release.
type Type int

const (
	TypeUnknown Type = iota
	// TypeSale releases a unit sold out of the fleet.
	TypeSale
	// TypeBook releases a unit to a booking.
	TypeBook
	// TypeRepo repositions a unit to another location.
	TypeRepo
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "UNKNOWN",
		TypeSale:    "SALE",
		TypeBook:    "BOOK",
		TypeRepo:    "REPO",
	}
}

func ParseType(s string) (Type, error) {
	for k, v := range getTypeStrings() {
		if v == s && k != TypeUnknown {
			return k, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a release type", s))
}

func (t Type) String() string {
	if v, ok := getTypeStrings()[t]; ok {
		return v
	}
	return getTypeStrings()[TypeUnknown]
}

func (t Type) Validate() error {
	if t < TypeSale || t > TypeRepo {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid release type", t))
	}
	return nil
}
