package commands

import (
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrCancelReleaseCommandIsNotConstructed = errors.New(
	"CancelReleaseCommand must be created via NewCancelReleaseCommand constructor",
)

// CancelReleaseCommand sets the cancellation marker of a release.
type CancelReleaseCommand struct { //nolint:recvcheck //using for validation
	caller kernel.Caller
	number string

	guard guard.ConstructorGuard
}

func NewCancelReleaseCommand(caller kernel.Caller, number string) (CancelReleaseCommand, error) {
	v, err := kernel.RequiredText("releaseNumber", number, kernel.KeyMaxLength)
	if err != nil {
		return CancelReleaseCommand{}, err
	}
	return CancelReleaseCommand{caller: caller, number: v, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelReleaseCommand) Validate() error {
	return c.guard.Validate(ErrCancelReleaseCommandIsNotConstructed)
}

func (c CancelReleaseCommand) Caller() kernel.Caller { return c.caller }
func (c CancelReleaseCommand) Number() string        { return c.number }
