package queries

import (
	"errors"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/validation"
	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrGetEstimateAllocationQueryIsNotConstructed = errors.New(
	"GetEstimateAllocationQuery must be created via NewGetEstimateAllocationQuery constructor",
)

// GetEstimateAllocationQuery breaks the current revision down by payer.
// CTL and the preliminary decision come from the caller and are echoed back.
type GetEstimateAllocationQuery struct {
	key      estimate.Key
	ctl      bool
	decision *estimate.PreliminaryDecision

	guard guard.ConstructorGuard
}

func NewGetEstimateAllocationQuery(
	number string,
	payload requests.EstimateAllocation,
) (GetEstimateAllocationQuery, error) {
	if err := validation.Validate(payload); err != nil {
		return GetEstimateAllocationQuery{}, err
	}
	key, err := estimateKey(number, payload.Depot)
	if err != nil {
		return GetEstimateAllocationQuery{}, err
	}

	q := GetEstimateAllocationQuery{key: key, ctl: payload.CTL, guard: guard.NewConstructorGuard()}
	if d := payload.PreliminaryDecision; d != nil {
		difference, err := kernel.NewAmount("difference", d.Difference)
		if err != nil {
			return GetEstimateAllocationQuery{}, err
		}
		decision, err := estimate.NewPreliminaryDecision(d.Recommendation, d.Reason, difference)
		if err != nil {
			return GetEstimateAllocationQuery{}, err
		}
		q.decision = &decision
	}
	return q, nil
}

func (q GetEstimateAllocationQuery) Validate() error {
	return q.guard.Validate(ErrGetEstimateAllocationQueryIsNotConstructed)
}

func (q GetEstimateAllocationQuery) Key() estimate.Key { return q.key }
func (q GetEstimateAllocationQuery) CTL() bool         { return q.ctl }

func (q GetEstimateAllocationQuery) PreliminaryDecision() *estimate.PreliminaryDecision {
	return q.decision
}

type PreliminaryDecisionView struct {
	Recommendation string `json:"recommendation"`
	Reason         string `json:"reason,omitempty"`
	Difference     string `json:"difference"`
}

type GetEstimateAllocationQueryResponse struct {
	EstimateNumber      string                   `json:"estimateNumber"`
	Depot               string                   `json:"depot"`
	Revision            int                      `json:"revision"`
	Currency            string                   `json:"currency"`
	OwnerTotal          string                   `json:"ownerTotal"`
	CustomerTotal       string                   `json:"customerTotal"`
	InsuranceTotal      string                   `json:"insuranceTotal"`
	Total               string                   `json:"total"`
	CTL                 bool                     `json:"ctl"`
	PreliminaryDecision *PreliminaryDecisionView `json:"preliminaryDecision,omitempty"`
}
