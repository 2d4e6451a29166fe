package commands

import (
	"context"
	"errors"
	"fmt"

	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/ports"
	"depot/internal/pkg/errs"

	"github.com/juju/clock"
)

// CreateEstimateCommandHandler opens estimates. The first condition is checked
// against the configured condition policy.
//
// An external caller re-sending a known estimate appends a revision instead
// of failing. The re-sent estimate must name the unit of the stored one.
type CreateEstimateCommandHandler struct {
	uowFactory EstimateUoWFactory
	locks      KeyLocker
	clock      clock.Clock
	policy     estimate.ConditionPolicy
}

func NewCreateEstimateCommandHandler(
	uowFactory EstimateUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
	policy estimate.ConditionPolicy,
) CreateEstimateCommandHandler {
	return CreateEstimateCommandHandler{uowFactory: uowFactory, locks: locks, clock: clk, policy: policy}
}

func (h *CreateEstimateCommandHandler) Handle(ctx context.Context, cmd CreateEstimateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	key := cmd.Key()
	lock := lockKey("estimate", key.String())
	h.locks.Lock(lock)
	defer h.locks.Unlock(lock)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	depot, err := newPartyResolver(uow.PartyRepository()).existing(ctx, roleDepot, key.Depot)
	if err != nil {
		return err
	}

	repo := uow.EstimateRepository()
	exists, err := repo.Exists(ctx, key)
	if err != nil {
		return err
	}
	insert, err := insertOrReplace("estimate", key.String(), exists, modeCreate, cmd.Caller())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	if !insert {
		aggregate, getErr := repo.Get(ctx, key)
		if getErr != nil {
			return getErr
		}
		if !aggregate.UnitNumber().IsEqual(cmd.UnitNumber()) {
			return errs.NewInvariantViolatedError("Estimate "+key.String(),
				fmt.Sprintf("is for unit %s, not %s", aggregate.UnitNumber(), cmd.UnitNumber()))
		}
		revision, reviseErr := aggregate.Revise(cmd.Content(), h.policy, now)
		if reviseErr != nil {
			return reviseErr
		}
		if err = repo.AddRevision(ctx, aggregate, revision); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	aggregate, err := estimate.NewEstimate(key.Number, depot, cmd.UnitNumber(), cmd.Content(), h.policy, now)
	if err != nil {
		return err
	}
	if err = repo.AddRevision(ctx, aggregate, aggregate.Current()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// estimateChanger runs fn against a stored estimate inside a locked
// transaction. A missing estimate is a conflict, never an upsert: revisions
// need an estimate to follow.
type estimateChanger struct {
	uowFactory EstimateUoWFactory
	locks      KeyLocker
}

func (c estimateChanger) change(
	ctx context.Context,
	key estimate.Key,
	fn func(repo ports.EstimateRepository, aggregate *estimate.Estimate) error,
) error {
	lock := lockKey("estimate", key.String())
	c.locks.Lock(lock)
	defer c.locks.Unlock(lock)

	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.EstimateRepository()
	aggregate, err := repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewDoesNotExistError("estimate", key.String())
		}
		return err
	}
	if err = fn(repo, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ReviseEstimateCommandHandler appends a revision. Cancelled estimates reject it.
type ReviseEstimateCommandHandler struct {
	changer estimateChanger
	clock   clock.Clock
	policy  estimate.ConditionPolicy
}

func NewReviseEstimateCommandHandler(
	uowFactory EstimateUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
	policy estimate.ConditionPolicy,
) ReviseEstimateCommandHandler {
	return ReviseEstimateCommandHandler{
		changer: estimateChanger{uowFactory: uowFactory, locks: locks},
		clock:   clk,
		policy:  policy,
	}
}

func (h *ReviseEstimateCommandHandler) Handle(ctx context.Context, cmd ReviseEstimateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.changer.change(ctx, cmd.Key(), func(repo ports.EstimateRepository, aggregate *estimate.Estimate) error {
		revision, err := aggregate.Revise(cmd.Content(), h.policy, h.clock.Now())
		if err != nil {
			return err
		}
		return repo.AddRevision(ctx, aggregate, revision)
	})
}

// ApproveEstimateCommandHandler appends a copy of the current revision that
// carries the customer approval.
type ApproveEstimateCommandHandler struct {
	changer estimateChanger
	clock   clock.Clock
}

func NewApproveEstimateCommandHandler(
	uowFactory EstimateUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) ApproveEstimateCommandHandler {
	return ApproveEstimateCommandHandler{changer: estimateChanger{uowFactory: uowFactory, locks: locks}, clock: clk}
}

func (h *ApproveEstimateCommandHandler) Handle(ctx context.Context, cmd ApproveEstimateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.changer.change(ctx, cmd.Key(), func(repo ports.EstimateRepository, aggregate *estimate.Estimate) error {
		revision, err := aggregate.Approve(cmd.Approval(), h.clock.Now())
		if err != nil {
			return err
		}
		return repo.AddRevision(ctx, aggregate, revision)
	})
}

type CancelEstimateCommandHandler struct {
	changer estimateChanger
	clock   clock.Clock
}

func NewCancelEstimateCommandHandler(
	uowFactory EstimateUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) CancelEstimateCommandHandler {
	return CancelEstimateCommandHandler{changer: estimateChanger{uowFactory: uowFactory, locks: locks}, clock: clk}
}

func (h *CancelEstimateCommandHandler) Handle(ctx context.Context, cmd CancelEstimateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.changer.change(ctx, cmd.Key(), func(repo ports.EstimateRepository, aggregate *estimate.Estimate) error {
		req, err := estimate.NewCancelRequest(cmd.Reason(), cmd.Caller().Name(), h.clock.Now())
		if err != nil {
			return err
		}
		if err = aggregate.Cancel(req); err != nil {
			return err
		}
		return repo.Cancel(ctx, aggregate)
	})
}
