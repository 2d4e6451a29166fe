package commands

import (
	"context"
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"
)

// CreatePartyCommandHandler registers parties. An internal caller registering
// a known party gets a conflict; an external caller gets the stored party.
type CreatePartyCommandHandler struct {
	uowFactory PartyUoWFactory
	locks      KeyLocker
}

func NewCreatePartyCommandHandler(uowFactory PartyUoWFactory, locks KeyLocker) CreatePartyCommandHandler {
	return CreatePartyCommandHandler{uowFactory: uowFactory, locks: locks}
}

func (h *CreatePartyCommandHandler) Handle(ctx context.Context, cmd CreatePartyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	candidate, err := newRegisteredParty(cmd)
	if err != nil {
		return err
	}

	lock := lockKey("party", string(candidate.Key()))
	h.locks.Lock(lock)
	defer h.locks.Unlock(lock)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PartyRepository()
	exists := true
	if _, err = repo.Find(ctx, candidate.Key()); err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		exists = false
	}

	insert, err := insertOrReplace("party", string(candidate.Key()), exists, modeCreate, cmd.Caller())
	if err != nil {
		return err
	}
	if insert {
		if _, err = repo.Save(ctx, candidate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func newRegisteredParty(cmd CreatePartyCommand) (*party.Party, error) {
	payload := cmd.Payload()
	contact, err := contactOf(payload.Contact)
	if err != nil {
		return nil, err
	}
	if payload.Kind == "EXTERNAL" {
		return party.NewExternalParty(kernel.NewUUID(), "Party", payload.CompanyID, payload.Code, contact)
	}
	return party.RestoreParty(kernel.NewUUID(), party.KindInternal, payload.CompanyID, payload.Code, contact)
}
