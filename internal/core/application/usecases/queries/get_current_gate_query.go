package queries

import (
	"errors"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrGetCurrentGateQueryIsNotConstructed = errors.New(
	"GetCurrentGateQuery must be created via NewGetCurrentGateQuery constructor",
)

// GetCurrentGateQuery asks for the latest live gate movement of a unit.
type GetCurrentGateQuery struct {
	unitNumber kernel.UnitNumber

	guard guard.ConstructorGuard
}

func NewGetCurrentGateQuery(unitNumber string) (GetCurrentGateQuery, error) {
	un, err := kernel.NewUnitNumber(unitNumber)
	if err != nil {
		return GetCurrentGateQuery{}, err
	}
	return GetCurrentGateQuery{unitNumber: un, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCurrentGateQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentGateQueryIsNotConstructed)
}

func (q GetCurrentGateQuery) UnitNumber() kernel.UnitNumber { return q.unitNumber }

// GateRecordView is one gate_records row as exposed to callers.
type GateRecordView struct {
	Seq          int64     `json:"seq"`
	UnitNumber   string    `json:"unitNumber"`
	AdviceNumber string    `json:"adviceNumber"`
	Depot        string    `json:"depot"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	ActivityTime time.Time `json:"activityTime"`
	Remarks      string    `json:"remarks,omitempty"`
	Deleted      bool      `json:"deleted,omitempty"`
}

type GetCurrentGateQueryResponse struct {
	Gate GateRecordView `json:"gate"`
}
