package queries

import (
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrGetPartyQueryIsNotConstructed = errors.New(
	"GetPartyQuery must be created via NewGetPartyQuery constructor",
)

// GetPartyQuery looks up a registered party by company id.
type GetPartyQuery struct {
	companyID kernel.CompanyID

	guard guard.ConstructorGuard
}

func NewGetPartyQuery(companyID string) (GetPartyQuery, error) {
	id, err := kernel.NewCompanyID(companyID)
	if err != nil {
		return GetPartyQuery{}, err
	}
	return GetPartyQuery{companyID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPartyQuery) Validate() error {
	return q.guard.Validate(ErrGetPartyQueryIsNotConstructed)
}

func (q GetPartyQuery) CompanyID() kernel.CompanyID { return q.companyID }

type ContactView struct {
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	City    string   `json:"city,omitempty"`
	Country string   `json:"country,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Emails  []string `json:"emails,omitempty"`
}

type GetPartyQueryResponse struct {
	ID        string      `json:"id"`
	Kind      string      `json:"kind"`
	CompanyID string      `json:"companyId,omitempty"`
	Code      string      `json:"code,omitempty"`
	Contact   ContactView `json:"contact"`
}
