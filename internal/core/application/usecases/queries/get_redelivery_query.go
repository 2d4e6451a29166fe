package queries

import (
	"errors"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrGetRedeliveryQueryIsNotConstructed = errors.New(
	"GetRedeliveryQuery must be created via NewGetRedeliveryQuery constructor",
)

// GetRedeliveryQuery loads a redelivery with its status at the time of the query.
type GetRedeliveryQuery struct {
	number string

	guard guard.ConstructorGuard
}

func NewGetRedeliveryQuery(number string) (GetRedeliveryQuery, error) {
	n, err := kernel.RequiredText("redeliveryNumber", number, kernel.KeyMaxLength)
	if err != nil {
		return GetRedeliveryQuery{}, err
	}
	return GetRedeliveryQuery{number: n, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRedeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetRedeliveryQueryIsNotConstructed)
}

func (q GetRedeliveryQuery) Number() string { return q.number }

type RedeliveryUnitView struct {
	UnitNumber         string     `json:"unitNumber"`
	ManufactureDate    time.Time  `json:"manufactureDate"`
	LastOnHireDate     *time.Time `json:"lastOnHireDate,omitempty"`
	LastOnHireLocation string     `json:"lastOnHireLocation,omitempty"`
	Status             string     `json:"status"`
	BillingParty       *RefView   `json:"billingParty,omitempty"`
}

type RedeliveryDetailView struct {
	Customer           *RefView             `json:"customer,omitempty"`
	Contract           string               `json:"contract,omitempty"`
	Equipment          string               `json:"equipment,omitempty"`
	InsuranceCoverage  *RefView             `json:"insuranceCoverage,omitempty"`
	InspectionCriteria string               `json:"inspectionCriteria,omitempty"`
	BillingParty       *RefView             `json:"billingParty,omitempty"`
	Quantity           int                  `json:"quantity"`
	Units              []RedeliveryUnitView `json:"units"`
}

type GetRedeliveryQueryResponse struct {
	HeaderView

	Details []RedeliveryDetailView `json:"details"`
}
