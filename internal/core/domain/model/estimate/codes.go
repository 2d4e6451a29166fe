package estimate

import (
	"fmt"

	"depot/internal/pkg/errs"
)

// ResponsibleParty is who pays for a line item.
type ResponsibleParty int

const (
	PartyUnknown ResponsibleParty = iota
	PartyOwner
	PartyCustomer
	PartyInsurance
	PartyWarranty
	PartySpecial
	PartyDepot
	PartyDeleted
	PartyThirdParty
)

func getResponsiblePartyStrings() map[ResponsibleParty]string {
	return map[ResponsibleParty]string{
		PartyUnknown:    "UNKNOWN",
		PartyOwner:      "O",
		PartyCustomer:   "U",
		PartyInsurance:  "I",
		PartyWarranty:   "W",
		PartySpecial:    "S",
		PartyDepot:      "D",
		PartyDeleted:    "X",
		PartyThirdParty: "T",
	}
}

func ParseResponsibleParty(s string) (ResponsibleParty, error) {
	for k, v := range getResponsiblePartyStrings() {
		if v == s && k != PartyUnknown {
			return k, nil
		}
	}
	return PartyUnknown, errs.NewValueIsInvalidErrorWithCause("party", fmt.Errorf("%q is not a responsible party", s))
}

func (p ResponsibleParty) String() string {
	if v, ok := getResponsiblePartyStrings()[p]; ok {
		return v
	}
	return getResponsiblePartyStrings()[PartyUnknown]
}

func (p ResponsibleParty) Validate() error {
	if p < PartyOwner || p > PartyThirdParty {
		return errs.NewValueIsInvalidErrorWithCause("party", fmt.Errorf("%d is not a valid responsible party", p))
	}
	return nil
}

// Condition is the stage of an estimate in the approval pipeline.
// The documented order is D, E, then F or G, then L.
type Condition int

const (
	ConditionUnknown Condition = iota
	ConditionD
	ConditionE
	ConditionF
	ConditionG
	ConditionL
)

func getConditionStrings() map[Condition]string {
	return map[Condition]string{
		ConditionUnknown: "UNKNOWN",
		ConditionD:       "D",
		ConditionE:       "E",
		ConditionF:       "F",
		ConditionG:       "G",
		ConditionL:       "L",
	}
}

func ParseCondition(s string) (Condition, error) {
	for k, v := range getConditionStrings() {
		if v == s && k != ConditionUnknown {
			return k, nil
		}
	}
	return ConditionUnknown, errs.NewValueIsInvalidErrorWithCause("condition", fmt.Errorf("%q is not an estimate condition", s))
}

func (c Condition) String() string {
	if v, ok := getConditionStrings()[c]; ok {
		return v
	}
	return getConditionStrings()[ConditionUnknown]
}

func (c Condition) Validate() error {
	if c < ConditionD || c > ConditionL {
		return errs.NewValueIsInvalidErrorWithCause("condition", fmt.Errorf("%d is not a valid condition", c))
	}
	return nil
}

// stage orders conditions; F and G are alternatives on the same stage.
func (c Condition) stage() int {
	switch c {
	case ConditionD:
		return 1
	case ConditionE:
		return 2
	case ConditionF, ConditionG:
		return 3
	case ConditionL:
		return 4
	default:
		return 0
	}
}
