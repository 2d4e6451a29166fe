package commands

import (
	"errors"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/validation"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var (
	ErrCreateWorkOrderCommandIsNotConstructed = errors.New(
		"CreateWorkOrderCommand must be created via NewCreateWorkOrderCommand constructor",
	)
	ErrWorkOrderUnitCommandIsNotConstructed = errors.New(
		"WorkOrderUnitCommand must be created via NewWorkOrderUnitCommand constructor",
	)
)

// CreateWorkOrderCommand issues a repair work order for one or more units.
type CreateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	payload requests.WorkOrder

	guard guard.ConstructorGuard
}

func NewCreateWorkOrderCommand(caller kernel.Caller, payload requests.WorkOrder) (CreateWorkOrderCommand, error) {
	if err := validation.Validate(payload); err != nil {
		return CreateWorkOrderCommand{}, err
	}
	return CreateWorkOrderCommand{caller: caller, payload: payload, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrderCommandIsNotConstructed)
}

func (c CreateWorkOrderCommand) Caller() kernel.Caller       { return c.caller }
func (c CreateWorkOrderCommand) Payload() requests.WorkOrder { return c.payload }

// WorkOrderUnitCommand addresses one unit of a work order. It drives both
// repair completion and removal.
type WorkOrderUnitCommand struct { //nolint:recvcheck //using for validation
	caller     kernel.Caller
	number     string
	unitNumber kernel.UnitNumber

	guard guard.ConstructorGuard
}

func NewWorkOrderUnitCommand(caller kernel.Caller, number, unitNumber string) (WorkOrderUnitCommand, error) {
	v, errNumber := kernel.RequiredText("workOrderNumber", number, kernel.KeyMaxLength)
	un, errUnit := kernel.NewUnitNumber(unitNumber)
	if err := errors.Join(errNumber, errUnit); err != nil {
		return WorkOrderUnitCommand{}, err
	}
	return WorkOrderUnitCommand{caller: caller, number: v, unitNumber: un, guard: guard.NewConstructorGuard()}, nil
}

func (c WorkOrderUnitCommand) Validate() error {
	return c.guard.Validate(ErrWorkOrderUnitCommandIsNotConstructed)
}

func (c WorkOrderUnitCommand) Caller() kernel.Caller         { return c.caller }
func (c WorkOrderUnitCommand) Number() string                { return c.number }
func (c WorkOrderUnitCommand) UnitNumber() kernel.UnitNumber { return c.unitNumber }
