package commands

import (
	"errors"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/validation"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrCreatePartyCommandIsNotConstructed = errors.New(
	"CreatePartyCommand must be created via NewCreatePartyCommand constructor",
)

// CreatePartyCommand registers a party outside of any advice, typically a
// depot before it starts sending gate messages.
//
// Example:
//
//	cmd, err := NewCreatePartyCommand(caller, requests.PartyRegistration{
//	    Kind:      "INTERNAL",
//	    CompanyID: "DEPOT0001",
//	})
//	if err != nil {
//	    return err
//	}
type CreatePartyCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	payload requests.PartyRegistration

	guard guard.ConstructorGuard
}

func NewCreatePartyCommand(caller kernel.Caller, payload requests.PartyRegistration) (CreatePartyCommand, error) {
	if err := validation.Validate(payload); err != nil {
		return CreatePartyCommand{}, err
	}
	return CreatePartyCommand{caller: caller, payload: payload, guard: guard.NewConstructorGuard()}, nil
}

func (c CreatePartyCommand) Validate() error {
	return c.guard.Validate(ErrCreatePartyCommandIsNotConstructed)
}

func (c CreatePartyCommand) Caller() kernel.Caller               { return c.caller }
func (c CreatePartyCommand) Payload() requests.PartyRegistration { return c.payload }
