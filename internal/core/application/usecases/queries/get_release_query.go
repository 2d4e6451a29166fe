package queries

import (
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrGetReleaseQueryIsNotConstructed = errors.New(
	"GetReleaseQuery must be created via NewGetReleaseQuery constructor",
)

// GetReleaseQuery loads a release with its status at the time of the query.
type GetReleaseQuery struct {
	number string

	guard guard.ConstructorGuard
}

func NewGetReleaseQuery(number string) (GetReleaseQuery, error) {
	n, err := kernel.RequiredText("releaseNumber", number, kernel.KeyMaxLength)
	if err != nil {
		return GetReleaseQuery{}, err
	}
	return GetReleaseQuery{number: n, guard: guard.NewConstructorGuard()}, nil
}

func (q GetReleaseQuery) Validate() error {
	return q.guard.Validate(ErrGetReleaseQueryIsNotConstructed)
}

func (q GetReleaseQuery) Number() string { return q.number }

type CriterionView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ReleaseUnitView struct {
	UnitNumber string `json:"unitNumber"`
	Status     string `json:"status"`
}

type ReleaseDetailView struct {
	Customer  *RefView          `json:"customer,omitempty"`
	Contract  string            `json:"contract,omitempty"`
	Equipment string            `json:"equipment,omitempty"`
	Quantity  int               `json:"quantity"`
	Criteria  []CriterionView   `json:"criteria,omitempty"`
	Units     []ReleaseUnitView `json:"units"`
}

type GetReleaseQueryResponse struct {
	HeaderView

	Type    string              `json:"type"`
	Owner   *RefView            `json:"owner,omitempty"`
	Details []ReleaseDetailView `json:"details"`
}
