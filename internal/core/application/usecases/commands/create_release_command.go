package commands

import (
	"errors"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/validation"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrCreateReleaseCommandIsNotConstructed = errors.New(
	"CreateReleaseCommand must be created via NewCreateReleaseCommand constructor",
)

// CreateReleaseCommand represents a new SALE, BOOK or REPO release advice.
type CreateReleaseCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	payload requests.Release

	guard guard.ConstructorGuard
}

func NewCreateReleaseCommand(caller kernel.Caller, payload requests.Release) (CreateReleaseCommand, error) {
	if err := validation.Validate(payload); err != nil {
		return CreateReleaseCommand{}, err
	}
	return CreateReleaseCommand{caller: caller, payload: payload, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateReleaseCommand) Validate() error {
	return c.guard.Validate(ErrCreateReleaseCommandIsNotConstructed)
}

func (c CreateReleaseCommand) Caller() kernel.Caller     { return c.caller }
func (c CreateReleaseCommand) Payload() requests.Release { return c.payload }
