package queries

import (
	"errors"
	"time"

	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrGetEstimateQueryIsNotConstructed = errors.New(
	"GetEstimateQuery must be created via NewGetEstimateQuery constructor",
)

// GetEstimateQuery loads the current revision of an estimate and its history.
type GetEstimateQuery struct {
	key estimate.Key

	guard guard.ConstructorGuard
}

func NewGetEstimateQuery(number, depot string) (GetEstimateQuery, error) {
	key, err := estimateKey(number, depot)
	if err != nil {
		return GetEstimateQuery{}, err
	}
	return GetEstimateQuery{key: key, guard: guard.NewConstructorGuard()}, nil
}

func estimateKey(number, depot string) (estimate.Key, error) {
	n, errNumber := kernel.RequiredText("estimateNumber", number, kernel.KeyMaxLength)
	d, errDepot := kernel.NewCompanyID(depot)
	if err := errors.Join(errNumber, errDepot); err != nil {
		return estimate.Key{}, err
	}
	return estimate.Key{Number: n, Depot: d.String()}, nil
}

func (q GetEstimateQuery) Validate() error {
	return q.guard.Validate(ErrGetEstimateQueryIsNotConstructed)
}

func (q GetEstimateQuery) Key() estimate.Key { return q.key }

type PartView struct {
	PartNumber string `json:"partNumber"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
}

type LineItemView struct {
	RepairCode    string     `json:"repairCode"`
	DamageCode    string     `json:"damageCode,omitempty"`
	MaterialCode  string     `json:"materialCode,omitempty"`
	ComponentCode string     `json:"componentCode"`
	LocationCode  string     `json:"locationCode,omitempty"`
	Description   string     `json:"description,omitempty"`
	Hours         string     `json:"hours"`
	MaterialCost  string     `json:"materialCost"`
	LaborRate     string     `json:"laborRate"`
	Party         string     `json:"party"`
	Quantity      int        `json:"quantity"`
	Parts         []PartView `json:"parts,omitempty"`
	Cost          string     `json:"cost"`
}

type ApprovalView struct {
	ApprovedBy string    `json:"approvedBy"`
	ApprovedAt time.Time `json:"approvedAt"`
	Reference  string    `json:"reference,omitempty"`
}

type RevisionView struct {
	Revision         int            `json:"revision"`
	Condition        string         `json:"condition"`
	Currency         string         `json:"currency"`
	ExchangeRate     string         `json:"exchangeRate"`
	Total            string         `json:"total"`
	CustomerApproval *ApprovalView  `json:"customerApproval,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	LineItems        []LineItemView `json:"lineItems"`
}

type CancelView struct {
	Reason      string    `json:"reason,omitempty"`
	RequestedBy string    `json:"requestedBy"`
	RequestedAt time.Time `json:"requestedAt"`
}

type GetEstimateQueryResponse struct {
	EstimateNumber string         `json:"estimateNumber"`
	Depot          string         `json:"depot"`
	UnitNumber     string         `json:"unitNumber"`
	Status         string         `json:"status"`
	Current        RevisionView   `json:"current"`
	Revisions      []RevisionView `json:"revisions"`
	Cancel         *CancelView    `json:"cancel,omitempty"`
}
