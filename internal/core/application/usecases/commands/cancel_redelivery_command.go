package commands

import (
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrCancelRedeliveryCommandIsNotConstructed = errors.New(
	"CancelRedeliveryCommand must be created via NewCancelRedeliveryCommand constructor",
)

// CancelRedeliveryCommand sets the cancellation marker of a redelivery.
type CancelRedeliveryCommand struct { //nolint:recvcheck //using for validation
	caller kernel.Caller
	number string

	guard guard.ConstructorGuard
}

func NewCancelRedeliveryCommand(caller kernel.Caller, number string) (CancelRedeliveryCommand, error) {
	v, err := kernel.RequiredText("redeliveryNumber", number, kernel.KeyMaxLength)
	if err != nil {
		return CancelRedeliveryCommand{}, err
	}
	return CancelRedeliveryCommand{caller: caller, number: v, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelRedeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelRedeliveryCommandIsNotConstructed)
}

func (c CancelRedeliveryCommand) Caller() kernel.Caller { return c.caller }
func (c CancelRedeliveryCommand) Number() string        { return c.number }
