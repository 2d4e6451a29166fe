package commands

import (
	"errors"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/validation"
	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var (
	ErrCreateEstimateCommandIsNotConstructed = errors.New(
		"CreateEstimateCommand must be created via NewCreateEstimateCommand constructor",
	)
	ErrReviseEstimateCommandIsNotConstructed = errors.New(
		"ReviseEstimateCommand must be created via NewReviseEstimateCommand constructor",
	)
	ErrApproveEstimateCommandIsNotConstructed = errors.New(
		"ApproveEstimateCommand must be created via NewApproveEstimateCommand constructor",
	)
	ErrCancelEstimateCommandIsNotConstructed = errors.New(
		"CancelEstimateCommand must be created via NewCancelEstimateCommand constructor",
	)
)

// CreateEstimateCommand opens an estimate with revision 1. The content,
// totals included, is computed when the command is built.
type CreateEstimateCommand struct { //nolint:recvcheck //using for validation
	caller     kernel.Caller
	key        estimate.Key
	unitNumber kernel.UnitNumber
	content    estimate.Content

	guard guard.ConstructorGuard
}

func NewCreateEstimateCommand(caller kernel.Caller, payload requests.Estimate) (CreateEstimateCommand, error) {
	if err := validation.Validate(payload); err != nil {
		return CreateEstimateCommand{}, err
	}
	unitNumber, err := kernel.NewUnitNumber(payload.UnitNumber)
	if err != nil {
		return CreateEstimateCommand{}, err
	}
	content, err := buildContent(payload.Condition, payload.Currency, payload.ExchangeRate, payload.Total, payload.LineItems)
	if err != nil {
		return CreateEstimateCommand{}, err
	}
	return CreateEstimateCommand{
		caller:     caller,
		key:        estimate.Key{Number: payload.EstimateNumber, Depot: payload.Depot},
		unitNumber: unitNumber,
		content:    content,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateEstimateCommand) Validate() error {
	return c.guard.Validate(ErrCreateEstimateCommandIsNotConstructed)
}

func (c CreateEstimateCommand) Caller() kernel.Caller         { return c.caller }
func (c CreateEstimateCommand) Key() estimate.Key             { return c.key }
func (c CreateEstimateCommand) UnitNumber() kernel.UnitNumber { return c.unitNumber }
func (c CreateEstimateCommand) Content() estimate.Content     { return c.content }

// ReviseEstimateCommand appends revision n+1 with new content.
type ReviseEstimateCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	key     estimate.Key
	content estimate.Content

	guard guard.ConstructorGuard
}

func NewReviseEstimateCommand(
	caller kernel.Caller,
	number string,
	payload requests.EstimateRevision,
) (ReviseEstimateCommand, error) {
	if err := validation.Validate(payload); err != nil {
		return ReviseEstimateCommand{}, err
	}
	v, err := kernel.RequiredText("estimateNumber", number, kernel.KeyMaxLength)
	if err != nil {
		return ReviseEstimateCommand{}, err
	}
	content, err := buildContent(payload.Condition, payload.Currency, payload.ExchangeRate, payload.Total, payload.LineItems)
	if err != nil {
		return ReviseEstimateCommand{}, err
	}
	return ReviseEstimateCommand{
		caller:  caller,
		key:     estimate.Key{Number: v, Depot: payload.Depot},
		content: content,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReviseEstimateCommand) Validate() error {
	return c.guard.Validate(ErrReviseEstimateCommandIsNotConstructed)
}

func (c ReviseEstimateCommand) Caller() kernel.Caller     { return c.caller }
func (c ReviseEstimateCommand) Key() estimate.Key         { return c.key }
func (c ReviseEstimateCommand) Content() estimate.Content { return c.content }

// ApproveEstimateCommand records the customer approval of the current revision.
type ApproveEstimateCommand struct { //nolint:recvcheck //using for validation
	caller   kernel.Caller
	key      estimate.Key
	approval estimate.Approval

	guard guard.ConstructorGuard
}

func NewApproveEstimateCommand(
	caller kernel.Caller,
	number string,
	payload requests.EstimateApproval,
) (ApproveEstimateCommand, error) {
	if err := validation.Validate(payload); err != nil {
		return ApproveEstimateCommand{}, err
	}
	v, errNumber := kernel.RequiredText("estimateNumber", number, kernel.KeyMaxLength)
	approval, errApproval := estimate.NewApproval(
		payload.Approval.ApprovedBy, payload.Approval.ApprovedAt, payload.Approval.Reference)
	if err := errors.Join(errNumber, errApproval); err != nil {
		return ApproveEstimateCommand{}, err
	}
	return ApproveEstimateCommand{
		caller:   caller,
		key:      estimate.Key{Number: v, Depot: payload.Depot},
		approval: approval,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveEstimateCommand) Validate() error {
	return c.guard.Validate(ErrApproveEstimateCommandIsNotConstructed)
}

func (c ApproveEstimateCommand) Caller() kernel.Caller       { return c.caller }
func (c ApproveEstimateCommand) Key() estimate.Key           { return c.key }
func (c ApproveEstimateCommand) Approval() estimate.Approval { return c.approval }

// CancelEstimateCommand attaches a cancel request. The requester is the caller.
type CancelEstimateCommand struct { //nolint:recvcheck //using for validation
	caller kernel.Caller
	key    estimate.Key
	reason string

	guard guard.ConstructorGuard
}

func NewCancelEstimateCommand(
	caller kernel.Caller,
	number string,
	payload requests.EstimateCancel,
) (CancelEstimateCommand, error) {
	if err := validation.Validate(payload); err != nil {
		return CancelEstimateCommand{}, err
	}
	v, err := kernel.RequiredText("estimateNumber", number, kernel.KeyMaxLength)
	if err != nil {
		return CancelEstimateCommand{}, err
	}
	return CancelEstimateCommand{
		caller: caller,
		key:    estimate.Key{Number: v, Depot: payload.Depot},
		reason: payload.Reason,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CancelEstimateCommand) Validate() error {
	return c.guard.Validate(ErrCancelEstimateCommandIsNotConstructed)
}

func (c CancelEstimateCommand) Caller() kernel.Caller { return c.caller }
func (c CancelEstimateCommand) Key() estimate.Key     { return c.key }
func (c CancelEstimateCommand) Reason() string        { return c.reason }
