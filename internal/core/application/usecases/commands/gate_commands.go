package commands

import (
	"errors"
	"time"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/validation"
	"depot/internal/core/domain/model/gate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var (
	ErrCreateGateCommandIsNotConstructed = errors.New(
		"CreateGateCommand must be created via NewCreateGateCommand constructor",
	)
	ErrUpdateGateCommandIsNotConstructed = errors.New(
		"UpdateGateCommand must be created via NewUpdateGateCommand constructor",
	)
	ErrDeleteGateCommandIsNotConstructed = errors.New(
		"DeleteGateCommand must be created via NewDeleteGateCommand constructor",
	)
)

// gateMovement is the parsed body of a gate create or update request.
type gateMovement struct {
	caller       kernel.Caller
	unitNumber   kernel.UnitNumber
	adviceNumber string
	depot        string
	direction    gate.Direction
	condition    gate.Condition
	activityTime time.Time
	remarks      string
}

func newGateMovement(caller kernel.Caller, payload requests.Gate) (gateMovement, error) {
	if err := validation.Validate(payload); err != nil {
		return gateMovement{}, err
	}
	unitNumber, errUnit := kernel.NewUnitNumber(payload.UnitNumber)
	direction, errDirection := gate.ParseDirection(payload.Type)
	condition, errCondition := gate.ParseCondition(payload.Status)
	if err := errors.Join(errUnit, errDirection, errCondition); err != nil {
		return gateMovement{}, err
	}
	return gateMovement{
		caller:       caller,
		unitNumber:   unitNumber,
		adviceNumber: payload.AdviceNumber,
		depot:        payload.Depot,
		direction:    direction,
		condition:    condition,
		activityTime: payload.ActivityTime,
		remarks:      payload.Remarks,
	}, nil
}

func (m gateMovement) Caller() kernel.Caller         { return m.caller }
func (m gateMovement) UnitNumber() kernel.UnitNumber { return m.unitNumber }
func (m gateMovement) AdviceNumber() string          { return m.adviceNumber }
func (m gateMovement) Depot() string                 { return m.depot }
func (m gateMovement) Direction() gate.Direction     { return m.direction }
func (m gateMovement) Condition() gate.Condition     { return m.condition }
func (m gateMovement) ActivityTime() time.Time       { return m.activityTime }
func (m gateMovement) Remarks() string               { return m.remarks }

// Key is the gate record addressed by the movement.
func (m gateMovement) Key() gate.Key {
	return gate.Key{
		UnitNumber:   m.unitNumber.String(),
		AdviceNumber: m.adviceNumber,
		Depot:        m.depot,
		Direction:    m.direction,
	}
}

// CreateGateCommand records a unit passing the depot gate.
//
// Example:
//
//	cmd, err := NewCreateGateCommand(kernel.ExternalCaller("gate-feed"), requests.Gate{
//	    UnitNumber:   "TRLU1234567",
//	    AdviceNumber: "AHAMG33141",
//	    Depot:        "DEPOT0001",
//	    Type:         "IN",
//	    Status:       "A",
//	    ActivityTime: time.Now(),
//	})
type CreateGateCommand struct { //nolint:recvcheck //using for validation
	gateMovement

	guard guard.ConstructorGuard
}

func NewCreateGateCommand(caller kernel.Caller, payload requests.Gate) (CreateGateCommand, error) {
	movement, err := newGateMovement(caller, payload)
	if err != nil {
		return CreateGateCommand{}, err
	}
	return CreateGateCommand{gateMovement: movement, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateGateCommand) Validate() error {
	return c.guard.Validate(ErrCreateGateCommandIsNotConstructed)
}

// UpdateGateCommand corrects condition, activity time and remarks of a gate record.
type UpdateGateCommand struct { //nolint:recvcheck //using for validation
	gateMovement

	guard guard.ConstructorGuard
}

func NewUpdateGateCommand(caller kernel.Caller, payload requests.Gate) (UpdateGateCommand, error) {
	movement, err := newGateMovement(caller, payload)
	if err != nil {
		return UpdateGateCommand{}, err
	}
	return UpdateGateCommand{gateMovement: movement, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateGateCommand) Validate() error {
	return c.guard.Validate(ErrUpdateGateCommandIsNotConstructed)
}

// DeleteGateCommand marks a gate record deleted.
type DeleteGateCommand struct { //nolint:recvcheck //using for validation
	caller kernel.Caller
	key    gate.Key

	guard guard.ConstructorGuard
}

func NewDeleteGateCommand(caller kernel.Caller, payload requests.GateDelete) (DeleteGateCommand, error) {
	if err := validation.Validate(payload); err != nil {
		return DeleteGateCommand{}, err
	}
	direction, err := gate.ParseDirection(payload.Type)
	if err != nil {
		return DeleteGateCommand{}, err
	}
	return DeleteGateCommand{
		caller: caller,
		key: gate.Key{
			UnitNumber:   payload.UnitNumber,
			AdviceNumber: payload.AdviceNumber,
			Depot:        payload.Depot,
			Direction:    direction,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteGateCommand) Validate() error {
	return c.guard.Validate(ErrDeleteGateCommandIsNotConstructed)
}

func (c DeleteGateCommand) Caller() kernel.Caller { return c.caller }
func (c DeleteGateCommand) Key() gate.Key         { return c.key }
