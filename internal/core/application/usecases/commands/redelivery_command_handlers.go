package commands

import (
	"context"

	"depot/internal/core/application/requests"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/redelivery"

	"github.com/juju/clock"
)

// redeliverySaver holds the save path shared by create and update. Both lock
// the redelivery number, resolve parties and decide between insert and
// replace by caller.
type redeliverySaver struct {
	uowFactory RedeliveryUoWFactory
	locks      KeyLocker
	clock      clock.Clock
}

func (s redeliverySaver) save(ctx context.Context, caller kernel.Caller, payload requests.Redelivery, mode saveMode) error {
	lock := lockKey("redelivery", payload.RedeliveryNumber)
	s.locks.Lock(lock)
	defer s.locks.Unlock(lock)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	header, details, err := buildRedelivery(ctx, newPartyResolver(uow.PartyRepository()), payload)
	if err != nil {
		return err
	}

	repo := uow.RedeliveryRepository()
	exists, err := repo.Exists(ctx, header.Number())
	if err != nil {
		return err
	}
	insert, err := insertOrReplace("redelivery", header.Number(), exists, mode, caller)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	if insert {
		aggregate, createErr := redelivery.NewRedelivery(header, details, now)
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
		if err = aggregate.Replace(header, details, now); err != nil {
			return err
		}
		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// CreateRedeliveryCommandHandler stores a new redelivery advice.
//
// Business rules:
//   - an internal caller creating a known redelivery number gets a conflict
//   - an external caller replaces the stored redelivery instead
//   - every party named by the advice is reused or created
type CreateRedeliveryCommandHandler struct {
	saver redeliverySaver
}

func NewCreateRedeliveryCommandHandler(
	uowFactory RedeliveryUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) CreateRedeliveryCommandHandler {
	return CreateRedeliveryCommandHandler{saver: redeliverySaver{uowFactory: uowFactory, locks: locks, clock: clk}}
}

func (h *CreateRedeliveryCommandHandler) Handle(ctx context.Context, cmd CreateRedeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.saver.save(ctx, cmd.Caller(), cmd.Payload(), modeCreate)
}

// UpdateRedeliveryCommandHandler replaces header, details and units of a
// redelivery. External callers create a missing redelivery.
type UpdateRedeliveryCommandHandler struct {
	saver redeliverySaver
}

func NewUpdateRedeliveryCommandHandler(
	uowFactory RedeliveryUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) UpdateRedeliveryCommandHandler {
	return UpdateRedeliveryCommandHandler{saver: redeliverySaver{uowFactory: uowFactory, locks: locks, clock: clk}}
}

func (h *UpdateRedeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateRedeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.saver.save(ctx, cmd.Caller(), cmd.Payload(), modeUpdate)
}

// CancelRedeliveryCommandHandler cancels a redelivery. Cancelling twice is a
// conflict.
type CancelRedeliveryCommandHandler struct {
	uowFactory RedeliveryUoWFactory
	locks      KeyLocker
	clock      clock.Clock
}

func NewCancelRedeliveryCommandHandler(
	uowFactory RedeliveryUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) CancelRedeliveryCommandHandler {
	return CancelRedeliveryCommandHandler{uowFactory: uowFactory, locks: locks, clock: clk}
}

func (h *CancelRedeliveryCommandHandler) Handle(ctx context.Context, cmd CancelRedeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lock := lockKey("redelivery", cmd.Number())
	h.locks.Lock(lock)
	defer h.locks.Unlock(lock)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RedeliveryRepository()
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
