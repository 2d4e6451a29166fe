package commands

import (
	"errors"
	"fmt"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/validation"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrUpdateReleaseCommandIsNotConstructed = errors.New(
	"UpdateReleaseCommand must be created via NewUpdateReleaseCommand constructor",
)

// UpdateReleaseCommand replaces a release wholesale. number is the
// addressed business key; a payload without a number takes it over.
type UpdateReleaseCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	payload requests.Release

	guard guard.ConstructorGuard
}

func NewUpdateReleaseCommand(
	caller kernel.Caller,
	number string,
	payload requests.Release,
) (UpdateReleaseCommand, error) {
	if payload.ReleaseNumber == "" {
		payload.ReleaseNumber = number
	}
	if payload.ReleaseNumber != number {
		return UpdateReleaseCommand{}, errs.NewValueIsInvalidErrorWithCause("releaseNumber",
			fmt.Errorf("%s does not match addressed release %s", payload.ReleaseNumber, number))
	}
	if err := validation.Validate(payload); err != nil {
		return UpdateReleaseCommand{}, err
	}
	return UpdateReleaseCommand{caller: caller, payload: payload, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateReleaseCommand) Validate() error {
	return c.guard.Validate(ErrUpdateReleaseCommandIsNotConstructed)
}

func (c UpdateReleaseCommand) Caller() kernel.Caller     { return c.caller }
func (c UpdateReleaseCommand) Payload() requests.Release { return c.payload }
