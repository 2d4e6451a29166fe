package queries

import (
	"errors"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrGetWorkOrderQueryIsNotConstructed = errors.New(
	"GetWorkOrderQuery must be created via NewGetWorkOrderQuery constructor",
)

type GetWorkOrderQuery struct {
	number string

	guard guard.ConstructorGuard
}

func NewGetWorkOrderQuery(number string) (GetWorkOrderQuery, error) {
	n, err := kernel.RequiredText("workOrderNumber", number, kernel.KeyMaxLength)
	if err != nil {
		return GetWorkOrderQuery{}, err
	}
	return GetWorkOrderQuery{number: n, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWorkOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderQueryIsNotConstructed)
}

func (q GetWorkOrderQuery) Number() string { return q.number }

type WorkOrderUnitView struct {
	UnitNumber string     `json:"unitNumber"`
	Status     string     `json:"status"`
	RepairedAt *time.Time `json:"repairedAt,omitempty"`
}

type EstimateRefView struct {
	EstimateNumber string `json:"estimateNumber"`
	Revision       int    `json:"revision"`
}

type GetWorkOrderQueryResponse struct {
	WorkOrderNumber string              `json:"workOrderNumber"`
	Depot           *RefView            `json:"depot,omitempty"`
	Owner           *RefView            `json:"owner,omitempty"`
	TargetCriteria  string              `json:"targetCriteria,omitempty"`
	Estimate        *EstimateRefView    `json:"estimate,omitempty"`
	Remarks         string              `json:"remarks,omitempty"`
	Status          string              `json:"status"`
	Units           []WorkOrderUnitView `json:"units"`
}
