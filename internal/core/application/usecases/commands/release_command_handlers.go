package commands

import (
	"context"

	"depot/internal/core/application/requests"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/release"

	"github.com/juju/clock"
)

type releaseSaver struct {
	uowFactory ReleaseUoWFactory
	locks      KeyLocker
	clock      clock.Clock
}

func (s releaseSaver) save(ctx context.Context, caller kernel.Caller, payload requests.Release, mode saveMode) error {
	lock := lockKey("release", payload.ReleaseNumber)
	s.locks.Lock(lock)
	defer s.locks.Unlock(lock)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parties := newPartyResolver(uow.PartyRepository())
	header, kind, details, err := buildRelease(ctx, parties, payload)
	if err != nil {
		return err
	}
	owner, err := parties.external(ctx, roleOwner, payload.Owner)
	if err != nil {
		return err
	}

	repo := uow.ReleaseRepository()
	exists, err := repo.Exists(ctx, header.Number())
	if err != nil {
		return err
	}
	insert, err := insertOrReplace("release", header.Number(), exists, mode, caller)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	if insert {
		aggregate, createErr := release.NewRelease(header, kind, owner, details, now)
		if createErr != nil {
			return createErr
		}
		if err = repo.Add(ctx, aggregate); err != nil {
			return err
		}
	} else {
		aggregate, getErr := repo.Get(ctx, header.Number())
		if getErr != nil {
			return getErr
		}
		if err = aggregate.Replace(header, kind, owner, details, now); err != nil {
			return err
		}
		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// CreateReleaseCommandHandler stores a new release advice. Identity and
// upsert rules are those of redeliveries.
type CreateReleaseCommandHandler struct {
	saver releaseSaver
}

func NewCreateReleaseCommandHandler(
	uowFactory ReleaseUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) CreateReleaseCommandHandler {
	return CreateReleaseCommandHandler{saver: releaseSaver{uowFactory: uowFactory, locks: locks, clock: clk}}
}

func (h *CreateReleaseCommandHandler) Handle(ctx context.Context, cmd CreateReleaseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.saver.save(ctx, cmd.Caller(), cmd.Payload(), modeCreate)
}

type UpdateReleaseCommandHandler struct {
	saver releaseSaver
}

func NewUpdateReleaseCommandHandler(
	uowFactory ReleaseUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) UpdateReleaseCommandHandler {
	return UpdateReleaseCommandHandler{saver: releaseSaver{uowFactory: uowFactory, locks: locks, clock: clk}}
}

func (h *UpdateReleaseCommandHandler) Handle(ctx context.Context, cmd UpdateReleaseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.saver.save(ctx, cmd.Caller(), cmd.Payload(), modeUpdate)
}

type CancelReleaseCommandHandler struct {
	uowFactory ReleaseUoWFactory
	locks      KeyLocker
	clock      clock.Clock
}

func NewCancelReleaseCommandHandler(
	uowFactory ReleaseUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) CancelReleaseCommandHandler {
	return CancelReleaseCommandHandler{uowFactory: uowFactory, locks: locks, clock: clk}
}

func (h *CancelReleaseCommandHandler) Handle(ctx context.Context, cmd CancelReleaseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lock := lockKey("release", cmd.Number())
	h.locks.Lock(lock)
	defer h.locks.Unlock(lock)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ReleaseRepository()
	aggregate, err := repo.Get(ctx, cmd.Number())
	if err != nil {
		return err
	}
	if err = aggregate.Cancel(h.clock.Now()); err != nil {
		return err
	}
	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
