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

var ErrUpdateRedeliveryCommandIsNotConstructed = errors.New(
	"UpdateRedeliveryCommand must be created via NewUpdateRedeliveryCommand constructor",
)

// UpdateRedeliveryCommand replaces a redelivery wholesale. number is the
// addressed business key; a payload without a number takes it over.
type UpdateRedeliveryCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	payload requests.Redelivery

	guard guard.ConstructorGuard
}

func NewUpdateRedeliveryCommand(
	caller kernel.Caller,
	number string,
	payload requests.Redelivery,
) (UpdateRedeliveryCommand, error) {
	if payload.RedeliveryNumber == "" {
		payload.RedeliveryNumber = number
	}
	if payload.RedeliveryNumber != number {
		return UpdateRedeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause("redeliveryNumber",
			fmt.Errorf("%s does not match addressed redelivery %s", payload.RedeliveryNumber, number))
	}
	if err := validation.Validate(payload); err != nil {
		return UpdateRedeliveryCommand{}, err
	}
	return UpdateRedeliveryCommand{caller: caller, payload: payload, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateRedeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRedeliveryCommandIsNotConstructed)
}

func (c UpdateRedeliveryCommand) Caller() kernel.Caller        { return c.caller }
func (c UpdateRedeliveryCommand) Payload() requests.Redelivery { return c.payload }
