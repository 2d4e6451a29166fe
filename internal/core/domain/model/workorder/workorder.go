package workorder

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder constructor")

const (
	EventCreated      = "WorkOrderCreated"
	EventUpdated      = "WorkOrderUpdated"
	EventUnitRepaired = "WorkOrderUnitRepaired"
	EventUnitRemoved  = "WorkOrderUnitRemoved"
)

// Status is derived from the units of a work order.
type Status int

const (
	StatusUnknown Status = iota
	StatusOpen
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "OPEN"
	case StatusCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// EstimateRef points at the estimate revision the work order executes.
type EstimateRef struct {
	Number   string
	Revision int
}

// WorkOrder authorises the repair of units to a target inspection criteria.
type WorkOrder struct {
	kernel.EventRecorder

	number         string
	depot          party.Ref
	owner          party.Ref
	targetCriteria string
	estimate       *EstimateRef
	remarks        string
	units          []Unit
	guard          guard.ConstructorGuard
}

func NewWorkOrder(
	number string,
	depot, owner party.Ref,
	targetCriteria string,
	estimate *EstimateRef,
	remarks string,
	units []Unit,
	at time.Time,
) (*WorkOrder, error) {
	w, err := RestoreWorkOrder(number, depot, owner, targetCriteria, estimate, remarks, units)
	if err != nil {
		return nil, err
	}
	w.record(EventCreated, at, map[string]string{"units": strconv.Itoa(len(units))})
	return w, nil
}

func RestoreWorkOrder(
	number string,
	depot, owner party.Ref,
	targetCriteria string,
	estimate *EstimateRef,
	remarks string,
	units []Unit,
) (*WorkOrder, error) {
	w := &WorkOrder{depot: depot, owner: owner, guard: guard.NewConstructorGuard()}

	var errNumber, errCriteria, errRemarks error
	w.number, errNumber = kernel.RequiredText("workOrderNumber", number, kernel.KeyMaxLength)
	w.targetCriteria, errCriteria = kernel.RequiredText("targetCriteria", targetCriteria, kernel.KeyMaxLength)
	w.remarks, errRemarks = kernel.BoundedText("remarks", remarks, kernel.RemarksMaxLength)

	if err := errors.Join(
		errNumber,
		advice.RequiredRef("depot", depot),
		advice.RequiredRef("owner", owner),
		errCriteria,
		errRemarks,
		w.setEstimate(estimate),
		w.setUnits(units),
	); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *WorkOrder) Validate() error {
	if w == nil {
		return ErrWorkOrderIsNotConstructed
	}
	return w.guard.Validate(ErrWorkOrderIsNotConstructed)
}

func (w *WorkOrder) Number() string         { return w.number }
func (w *WorkOrder) Depot() party.Ref       { return w.depot }
func (w *WorkOrder) Owner() party.Ref       { return w.owner }
func (w *WorkOrder) TargetCriteria() string { return w.targetCriteria }
func (w *WorkOrder) Remarks() string        { return w.remarks }
func (w *WorkOrder) Units() []Unit          { return append([]Unit(nil), w.units...) }

// Estimate returns nil when the work order was issued without an estimate.
func (w *WorkOrder) Estimate() *EstimateRef {
	if w.estimate == nil {
		return nil
	}
	e := *w.estimate
	return &e
}

// Status is COMPLETED once every unit still on the order is repaired.
func (w *WorkOrder) Status() Status {
	active, repaired := 0, 0
	for _, u := range w.units {
		if u.status == UnitRemoved {
			continue
		}
		active++
		if u.status == UnitRepaired {
			repaired++
		}
	}
	if active > 0 && active == repaired {
		return StatusCompleted
	}
	return StatusOpen
}

// Replace swaps every field but the work order number.
func (w *WorkOrder) Replace(
	depot, owner party.Ref,
	targetCriteria string,
	estimate *EstimateRef,
	remarks string,
	units []Unit,
	at time.Time,
) error {
	next, err := RestoreWorkOrder(w.number, depot, owner, targetCriteria, estimate, remarks, units)
	if err != nil {
		return err
	}
	w.depot = next.depot
	w.owner = next.owner
	w.targetCriteria = next.targetCriteria
	w.estimate = next.estimate
	w.remarks = next.remarks
	w.units = next.units
	w.record(EventUpdated, at, map[string]string{"units": strconv.Itoa(len(units))})
	return nil
}

// CompleteUnit records the repair of a tied unit.
func (w *WorkOrder) CompleteUnit(unitNumber kernel.UnitNumber, at time.Time) error {
	i, err := w.findUnit(unitNumber)
	if err != nil {
		return err
	}
	next, err := w.units[i].status.Repair()
	if err != nil {
		return err
	}
	v := at.UTC()
	w.units[i].status = next
	w.units[i].repairedAt = &v
	w.record(EventUnitRepaired, at, map[string]string{"unitNumber": unitNumber.String()})
	return nil
}

// RemoveUnit takes a tied unit off the work order.
func (w *WorkOrder) RemoveUnit(unitNumber kernel.UnitNumber, at time.Time) error {
	i, err := w.findUnit(unitNumber)
	if err != nil {
		return err
	}
	next, err := w.units[i].status.Remove()
	if err != nil {
		return err
	}
	w.units[i].status = next
	w.record(EventUnitRemoved, at, map[string]string{"unitNumber": unitNumber.String()})
	return nil
}

func (w *WorkOrder) findUnit(unitNumber kernel.UnitNumber) (int, error) {
	for i, u := range w.units {
		if u.unitNumber.IsEqual(unitNumber) {
			return i, nil
		}
	}
	return 0, errs.NewObjectNotFoundError("unit", unitNumber.String())
}

func (w *WorkOrder) setEstimate(ref *EstimateRef) error {
	if ref == nil {
		return nil
	}
	number, err := kernel.RequiredText("estimateNumber", ref.Number, kernel.KeyMaxLength)
	if err != nil {
		return err
	}
	if ref.Revision < 1 {
		return errs.NewRevisionIsInvalidErrorWithCause("estimateRevision",
			fmt.Errorf("%d is not positive", ref.Revision))
	}
	w.estimate = &EstimateRef{Number: number, Revision: ref.Revision}
	return nil
}

func (w *WorkOrder) setUnits(units []Unit) error {
	if len(units) == 0 {
		return errs.NewValueIsRequiredError("units")
	}
	seen := make(map[string]struct{}, len(units))
	for i, u := range units {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("units[%d]: %w", i, err)
		}
		if _, dup := seen[u.unitNumber.String()]; dup {
			return errs.NewInvariantViolatedError("", fmt.Sprintf("unit %s is listed twice", u.unitNumber))
		}
		seen[u.unitNumber.String()] = struct{}{}
	}
	w.units = append([]Unit(nil), units...)
	return nil
}

func (w *WorkOrder) record(name string, at time.Time, attrs map[string]string) {
	attrs["depot"] = w.depot.String()
	w.RecordEvent(kernel.NewDomainEvent(name, w.number, at, attrs))
}
