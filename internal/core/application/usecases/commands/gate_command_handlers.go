package commands

import (
	"context"
	"errors"
	"time"

	"depot/internal/core/domain/model/gate"
	"depot/internal/core/domain/services"
	"depot/internal/pkg/errs"

	"github.com/juju/clock"
)

// gateRecorder holds what the gate handlers share: per-key locking, depot
// lookup and matching records against their advice.
type gateRecorder struct {
	uowFactory GateUoWFactory
	locks      KeyLocker
	clock      clock.Clock
	matcher    services.AdviceMatcher
}

func (g gateRecorder) record(ctx context.Context, movement gateMovement, mode saveMode) error {
	key := movement.Key()
	lock := lockKey("gate", key.String())
	g.locks.Lock(lock)
	defer g.locks.Unlock(lock)

	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	depot, err := newPartyResolver(uow.PartyRepository()).existing(ctx, roleDepot, movement.Depot())
	if err != nil {
		return err
	}

	gates := uow.GateRepository()
	current, err := gates.Find(ctx, key)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	insert, err := insertOrReplace("gate", key.String(), current != nil, mode, movement.Caller())
	if err != nil {
		return err
	}

	now := g.clock.Now()
	if !insert {
		if err = current.Update(movement.Condition(), movement.ActivityTime(), movement.Remarks(), now); err != nil {
			return err
		}
		if err = gates.Update(ctx, current); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	record, err := gate.NewRecord(movement.UnitNumber(), movement.AdviceNumber(), depot,
		movement.Direction(), movement.Condition(), movement.ActivityTime(), movement.Remarks(), now)
	if err != nil {
		return err
	}
	if err = gates.Add(ctx, record); err != nil {
		return err
	}
	if err = g.matchAdvice(ctx, uow, record, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// matchAdvice applies a new record to its redelivery or release. Records
// naming an advice this depot does not know are kept unmatched.
func (g gateRecorder) matchAdvice(ctx context.Context, uow GateUoW, record *gate.Record, now time.Time) error {
	switch record.Direction() {
	case gate.DirectionIn:
		repo := uow.RedeliveryRepository()
		exists, err := repo.Exists(ctx, record.AdviceNumber())
		if err != nil || !exists {
			return err
		}
		advice, err := repo.Get(ctx, record.AdviceNumber())
		if err != nil {
			return err
		}
		if err = g.matcher.MatchIn(record, advice, now); err != nil {
			return err
		}
		return repo.Update(ctx, advice)
	case gate.DirectionOut:
		repo := uow.ReleaseRepository()
		exists, err := repo.Exists(ctx, record.AdviceNumber())
		if err != nil || !exists {
			return err
		}
		advice, err := repo.Get(ctx, record.AdviceNumber())
		if err != nil {
			return err
		}
		if err = g.matcher.MatchOut(record, advice, now); err != nil {
			return err
		}
		return repo.Update(ctx, advice)
	default:
		return record.Direction().Validate()
	}
}

// unmatchAdvice puts the unit of a deleted record back to TIED on the advice
// it matched, so the movement can be recorded again.
func (g gateRecorder) unmatchAdvice(ctx context.Context, uow GateUoW, record *gate.Record, now time.Time) error {
	switch record.Direction() {
	case gate.DirectionIn:
		repo := uow.RedeliveryRepository()
		exists, err := repo.Exists(ctx, record.AdviceNumber())
		if err != nil || !exists {
			return err
		}
		advice, err := repo.Get(ctx, record.AdviceNumber())
		if err != nil {
			return err
		}
		changed, err := g.matcher.UnmatchIn(record, advice, now)
		if err != nil || !changed {
			return err
		}
		return repo.Update(ctx, advice)
	case gate.DirectionOut:
		repo := uow.ReleaseRepository()
		exists, err := repo.Exists(ctx, record.AdviceNumber())
		if err != nil || !exists {
			return err
		}
		advice, err := repo.Get(ctx, record.AdviceNumber())
		if err != nil {
			return err
		}
		changed, err := g.matcher.UnmatchOut(record, advice, now)
		if err != nil || !changed {
			return err
		}
		return repo.Update(ctx, advice)
	default:
		return record.Direction().Validate()
	}
}

// CreateGateCommandHandler records gate movements.
//
// Business rules:
//   - the depot must be a registered party
//   - an internal caller recording a known gate key gets a conflict, an
//     external caller updates the stored record
//   - a new gate IN turns the unit in on its redelivery, a new gate OUT lots
//     it on its release
type CreateGateCommandHandler struct {
	recorder gateRecorder
}

func NewCreateGateCommandHandler(
	uowFactory GateUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
	matcher services.AdviceMatcher,
) CreateGateCommandHandler {
	return CreateGateCommandHandler{recorder: gateRecorder{
		uowFactory: uowFactory, locks: locks, clock: clk, matcher: matcher,
	}}
}

func (h *CreateGateCommandHandler) Handle(ctx context.Context, cmd CreateGateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.recorder.record(ctx, cmd.gateMovement, modeCreate)
}

type UpdateGateCommandHandler struct {
	recorder gateRecorder
}

func NewUpdateGateCommandHandler(
	uowFactory GateUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
	matcher services.AdviceMatcher,
) UpdateGateCommandHandler {
	return UpdateGateCommandHandler{recorder: gateRecorder{
		uowFactory: uowFactory, locks: locks, clock: clk, matcher: matcher,
	}}
}

func (h *UpdateGateCommandHandler) Handle(ctx context.Context, cmd UpdateGateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.recorder.record(ctx, cmd.gateMovement, modeUpdate)
}

// DeleteGateCommandHandler marks a gate record deleted and reverts the unit
// the record turned in or lotted. Deleting a missing or already deleted
// record is a conflict.
type DeleteGateCommandHandler struct {
	recorder gateRecorder
}

func NewDeleteGateCommandHandler(
	uowFactory GateUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
	matcher services.AdviceMatcher,
) DeleteGateCommandHandler {
	return DeleteGateCommandHandler{recorder: gateRecorder{
		uowFactory: uowFactory, locks: locks, clock: clk, matcher: matcher,
	}}
}

func (h *DeleteGateCommandHandler) Handle(ctx context.Context, cmd DeleteGateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	key := cmd.Key()
	lock := lockKey("gate", key.String())
	h.recorder.locks.Lock(lock)
	defer h.recorder.locks.Unlock(lock)

	uow := h.recorder.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	gates := uow.GateRepository()
	record, err := gates.Find(ctx, key)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewDoesNotExistError("gate", key.String())
		}
		return err
	}

	now := h.recorder.clock.Now()
	if err = record.Delete(now); err != nil {
		return err
	}
	if err = gates.MarkDeleted(ctx, record); err != nil {
		return err
	}
	if err = h.recorder.unmatchAdvice(ctx, uow, record, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
