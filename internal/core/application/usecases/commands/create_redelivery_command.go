package commands

import (
	"errors"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/validation"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrCreateRedeliveryCommandIsNotConstructed = errors.New(
	"CreateRedeliveryCommand must be created via NewCreateRedeliveryCommand constructor",
)

// CreateRedeliveryCommand represents a new redelivery advice. The payload is
// checked by the validation engine before the command exists.
//
// Example:
//
//	cmd, err := NewCreateRedeliveryCommand(kernel.InternalCaller("jdoe"), payload)
//	if err != nil {
//	    return err // *errs.ValidationError listing every violation
//	}
//
//	handler := NewCreateRedeliveryCommandHandler(uowFactory, locks, clock)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create redelivery: %w", err)
//	}
type CreateRedeliveryCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	payload requests.Redelivery

	guard guard.ConstructorGuard
}

func NewCreateRedeliveryCommand(caller kernel.Caller, payload requests.Redelivery) (CreateRedeliveryCommand, error) {
	if err := validation.Validate(payload); err != nil {
		return CreateRedeliveryCommand{}, err
	}
	return CreateRedeliveryCommand{caller: caller, payload: payload, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateRedeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateRedeliveryCommandIsNotConstructed)
}

func (c CreateRedeliveryCommand) Caller() kernel.Caller        { return c.caller }
func (c CreateRedeliveryCommand) Payload() requests.Redelivery { return c.payload }
