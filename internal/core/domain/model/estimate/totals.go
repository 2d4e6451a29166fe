package estimate

import (
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Totals are line item costs summed by payer. Total also includes warranty,
// special, depot, deleted and third party lines.
type Totals struct {
	Owner     decimal.Decimal
	Customer  decimal.Decimal
	Insurance decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals sums line costs exactly; round only for presentation.
func ComputeTotals(items []LineItem) Totals {
	t := Totals{Owner: decimal.Zero, Customer: decimal.Zero, Insurance: decimal.Zero, Total: decimal.Zero}
	for _, item := range items {
		cost := item.Cost()
		switch item.party {
		case PartyOwner:
			t.Owner = t.Owner.Add(cost)
		case PartyCustomer:
			t.Customer = t.Customer.Add(cost)
		case PartyInsurance:
			t.Insurance = t.Insurance.Add(cost)
		default:
		}
		t.Total = t.Total.Add(cost)
	}
	return t
}

// Other is the part of Total not charged to owner, customer or insurance.
func (t Totals) Other() decimal.Decimal {
	return t.Total.Sub(t.Owner).Sub(t.Customer).Sub(t.Insurance)
}

var ErrPreliminaryDecisionIsNotConstructed = errors.New("PreliminaryDecision must be created via NewPreliminaryDecision constructor")

// PreliminaryDecision is the recommendation of an external decision process,
// carried through unchanged.
type PreliminaryDecision struct {
	recommendation string
	reason         string
	difference     kernel.Amount
	guard          guard.ConstructorGuard
}

func NewPreliminaryDecision(recommendation, reason string, difference kernel.Amount) (PreliminaryDecision, error) {
	d := PreliminaryDecision{guard: guard.NewConstructorGuard()}
	var errRecommendation, errReason error
	d.recommendation, errRecommendation = kernel.RequiredText("recommendation", recommendation, kernel.CodeMaxLength)
	d.reason, errReason = kernel.BoundedText("reason", reason, kernel.AddressMaxLength)
	if err := errors.Join(errRecommendation, errReason, difference.Validate()); err != nil {
		return PreliminaryDecision{}, err
	}
	d.difference = difference
	return d, nil
}

func (d PreliminaryDecision) Validate() error {
	return d.guard.Validate(ErrPreliminaryDecisionIsNotConstructed)
}

func (d PreliminaryDecision) Recommendation() string    { return d.recommendation }
func (d PreliminaryDecision) Reason() string            { return d.reason }
func (d PreliminaryDecision) Difference() kernel.Amount { return d.difference }

// Allocation is the derived breakdown of the current revision.
type Allocation struct {
	Totals
	CTL                 bool
	PreliminaryDecision *PreliminaryDecision
}
