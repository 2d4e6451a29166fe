package queries

import (
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrGetUnitGateHistoryQueryIsNotConstructed = errors.New(
	"GetUnitGateHistoryQuery must be created via NewGetUnitGateHistoryQuery constructor",
)

// GetUnitGateHistoryQuery lists every gate record of a unit in insertion
// order, deleted ones included.
type GetUnitGateHistoryQuery struct {
	unitNumber kernel.UnitNumber

	guard guard.ConstructorGuard
}

func NewGetUnitGateHistoryQuery(unitNumber string) (GetUnitGateHistoryQuery, error) {
	un, err := kernel.NewUnitNumber(unitNumber)
	if err != nil {
		return GetUnitGateHistoryQuery{}, err
	}
	return GetUnitGateHistoryQuery{unitNumber: un, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUnitGateHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetUnitGateHistoryQueryIsNotConstructed)
}

func (q GetUnitGateHistoryQuery) UnitNumber() kernel.UnitNumber { return q.unitNumber }

type GetUnitGateHistoryQueryResponse struct {
	Gates []GateRecordView `json:"gates"`
}
