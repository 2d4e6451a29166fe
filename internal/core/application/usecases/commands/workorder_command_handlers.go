package commands

import (
	"context"
	"fmt"

	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/workorder"
	"depot/internal/core/ports"
	"depot/internal/pkg/errs"

	"github.com/juju/clock"
)

func checkEstimate(
	ctx context.Context,
	repo ports.EstimateRepository,
	depot string,
	ref workorder.EstimateRef,
	units []workorder.Unit,
) error {
	key := estimate.Key{Number: ref.Number, Depot: depot}
	stored, err := repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if stored.IsCancelled() {
		return errs.NewConflictError("estimate", key, "is cancelled")
	}

	var revision *estimate.Revision
	for _, r := range stored.Revisions() {
		if r.Number() == ref.Revision {
			revision = r
			break
		}
	}
	if revision == nil {
		return errs.NewObjectNotFoundError("Estimate revision", fmt.Sprintf("%s/%d", key, ref.Revision))
	}
	if !revision.IsApproved() {
		return errs.NewConflictError("estimate", key, fmt.Sprintf("revision %d is not approved", ref.Revision))
	}

	for _, u := range units {
		if u.UnitNumber().IsEqual(stored.UnitNumber()) {
			return nil
		}
	}
	return errs.NewInvariantViolatedError("Estimate "+key.String(),
		fmt.Sprintf("is for unit %s which is not on the work order", stored.UnitNumber()))
}

// CreateWorkOrderCommandHandler stores work orders. Identity and upsert rules
// follow the advices: internal callers get a conflict on a known number,
// external callers replace the stored work order.
//
// A referenced estimate must exist at the work order depot, be active, have
// its referenced revision approved and cover one of the work order units.
type CreateWorkOrderCommandHandler struct {
	uowFactory WorkOrderUoWFactory
	locks      KeyLocker
	clock      clock.Clock
}

func NewCreateWorkOrderCommandHandler(
	uowFactory WorkOrderUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) CreateWorkOrderCommandHandler {
	return CreateWorkOrderCommandHandler{uowFactory: uowFactory, locks: locks, clock: clk}
}

func (h *CreateWorkOrderCommandHandler) Handle(ctx context.Context, cmd CreateWorkOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	payload := cmd.Payload()
	lock := lockKey("workorder", payload.WorkOrderNumber)
	h.locks.Lock(lock)
	defer h.locks.Unlock(lock)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parties := newPartyResolver(uow.PartyRepository())
	depot, err := parties.internal(ctx, payload.Depot)
	if err != nil {
		return fmt.Errorf("depot: %w", err)
	}
	owner, err := parties.external(ctx, roleOwner, payload.Owner)
	if err != nil {
		return fmt.Errorf("owner: %w", err)
	}

	units := make([]workorder.Unit, 0, len(payload.Units))
	for i, u := range payload.Units {
		unitNumber, unitErr := kernel.NewUnitNumber(u.UnitNumber)
		if unitErr != nil {
			return fmt.Errorf("units[%d]: %w", i, unitErr)
		}
		unit, unitErr := workorder.NewUnit(unitNumber)
		if unitErr != nil {
			return fmt.Errorf("units[%d]: %w", i, unitErr)
		}
		units = append(units, unit)
	}

	var ref *workorder.EstimateRef
	if payload.EstimateNumber != "" {
		ref = &workorder.EstimateRef{Number: payload.EstimateNumber, Revision: payload.EstimateRevision}
	}

	repo := uow.WorkOrderRepository()
	exists, err := repo.Exists(ctx, payload.WorkOrderNumber)
	if err != nil {
		return err
	}
	insert, err := insertOrReplace("workorder", payload.WorkOrderNumber, exists, modeCreate, cmd.Caller())
	if err != nil {
		return err
	}

	if ref != nil {
		if err = checkEstimate(ctx, uow.EstimateRepository(), payload.Depot.CompanyID, *ref, units); err != nil {
			return err
		}
	}

	now := h.clock.Now()
	if insert {
		aggregate, createErr := workorder.NewWorkOrder(payload.WorkOrderNumber, depot, owner,
			payload.TargetCriteria, ref, payload.Remarks, units, now)
		if createErr != nil {
			return createErr
		}
		if err = repo.Add(ctx, aggregate); err != nil {
			return err
		}
	} else {
		aggregate, getErr := repo.Get(ctx, payload.WorkOrderNumber)
		if getErr != nil {
			return getErr
		}
		if err = aggregate.Replace(depot, owner, payload.TargetCriteria, ref, payload.Remarks, units, now); err != nil {
			return err
		}
		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// workOrderUnitHandler applies one unit transition to a stored work order.
type workOrderUnitHandler struct {
	uowFactory WorkOrderUoWFactory
	locks      KeyLocker
	clock      clock.Clock
}

func (h workOrderUnitHandler) apply(
	ctx context.Context,
	cmd WorkOrderUnitCommand,
	transition func(*workorder.WorkOrder, kernel.UnitNumber) error,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lock := lockKey("workorder", cmd.Number())
	h.locks.Lock(lock)
	defer h.locks.Unlock(lock)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WorkOrderRepository()
	aggregate, err := repo.Get(ctx, cmd.Number())
	if err != nil {
		return err
	}
	if err = transition(aggregate, cmd.UnitNumber()); err != nil {
		return err
	}
	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// CompleteWorkOrderUnitCommandHandler records a finished repair. The work
// order completes once every remaining unit is repaired.
type CompleteWorkOrderUnitCommandHandler struct {
	unitHandler workOrderUnitHandler
}

func NewCompleteWorkOrderUnitCommandHandler(
	uowFactory WorkOrderUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) CompleteWorkOrderUnitCommandHandler {
	return CompleteWorkOrderUnitCommandHandler{
		unitHandler: workOrderUnitHandler{uowFactory: uowFactory, locks: locks, clock: clk},
	}
}

func (h *CompleteWorkOrderUnitCommandHandler) Handle(ctx context.Context, cmd WorkOrderUnitCommand) error {
	return h.unitHandler.apply(ctx, cmd, func(w *workorder.WorkOrder, un kernel.UnitNumber) error {
		return w.CompleteUnit(un, h.unitHandler.clock.Now())
	})
}

type RemoveWorkOrderUnitCommandHandler struct {
	unitHandler workOrderUnitHandler
}

func NewRemoveWorkOrderUnitCommandHandler(
	uowFactory WorkOrderUoWFactory,
	locks KeyLocker,
	clk clock.Clock,
) RemoveWorkOrderUnitCommandHandler {
	return RemoveWorkOrderUnitCommandHandler{
		unitHandler: workOrderUnitHandler{uowFactory: uowFactory, locks: locks, clock: clk},
	}
}

func (h *RemoveWorkOrderUnitCommandHandler) Handle(ctx context.Context, cmd WorkOrderUnitCommand) error {
	return h.unitHandler.apply(ctx, cmd, func(w *workorder.WorkOrder, un kernel.UnitNumber) error {
		return w.RemoveUnit(un, h.unitHandler.clock.Now())
	})
}
