package redelivery

import (
	"errors"
	"fmt"
	"time"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrRedeliveryIsNotConstructed = errors.New("Redelivery must be created via NewRedelivery constructor")

// Domain event names.
const (
	EventCreated      = "RedeliveryCreated"
	EventUpdated      = "RedeliveryUpdated"
	EventCancelled    = "RedeliveryCancelled"
	EventUnitTurnedIn = "RedeliveryUnitTurnedIn"
	EventUnitRemoved  = "RedeliveryUnitRemoved"
	EventUnitReverted = "RedeliveryUnitTurnInReverted"
)

// Redelivery is an advice permitting the return of containers to a depot.
//
// Invariants:
//   - at least one detail
//   - a unit number appears at most once across all details
//   - a cancelled redelivery accepts no further changes
//
// Status is derived, see Status.
type Redelivery struct {
	kernel.EventRecorder

	header    advice.Header
	details   []Detail
	cancelled bool
	guard     guard.ConstructorGuard
}

// NewRedelivery creates a redelivery and records EventCreated.
func NewRedelivery(header advice.Header, details []Detail, at time.Time) (*Redelivery, error) {
	r := &Redelivery{guard: guard.NewConstructorGuard()}
	if err := errors.Join(header.Validate(), r.setDetails(details)); err != nil {
		return nil, err
	}
	r.header = header
	r.record(EventCreated, at, nil)
	return r, nil
}

// RestoreRedelivery rebuilds a redelivery from persistence without recording events.
func RestoreRedelivery(header advice.Header, details []Detail, cancelled bool) (*Redelivery, error) {
	r := &Redelivery{guard: guard.NewConstructorGuard(), cancelled: cancelled}
	if err := errors.Join(header.Validate(), r.setDetails(details)); err != nil {
		return nil, err
	}
	r.header = header
	return r, nil
}

func (r *Redelivery) Validate() error {
	if r == nil {
		return ErrRedeliveryIsNotConstructed
	}
	return r.guard.Validate(ErrRedeliveryIsNotConstructed)
}

func (r *Redelivery) Number() string        { return r.header.Number() }
func (r *Redelivery) Header() advice.Header { return r.header }
func (r *Redelivery) IsCancelled() bool     { return r.cancelled }

func (r *Redelivery) Details() []Detail {
	out := make([]Detail, len(r.details))
	copy(out, r.details)
	return out
}

// Progress sums unit progress over every detail.
func (r *Redelivery) Progress() advice.Progress {
	var p advice.Progress
	for _, d := range r.details {
		p = p.Add(d.Progress())
	}
	return p
}

// Status derives the lifecycle state at now.
func (r *Redelivery) Status(now time.Time) advice.Status {
	return advice.Derive(r.cancelled, r.header.ApprovalDate(), r.header.ExpirationDate(), r.Progress(), now)
}

// Replace swaps header and details wholesale. The business key cannot change.
func (r *Redelivery) Replace(header advice.Header, details []Detail, at time.Time) error {
	if err := r.ensureActive(); err != nil {
		return err
	}
	if err := header.Validate(); err != nil {
		return err
	}
	if header.Number() != r.header.Number() {
		return errs.NewValueIsInvalidErrorWithCause("redeliveryNumber",
			fmt.Errorf("%s cannot replace %s", header.Number(), r.header.Number()))
	}
	if err := r.setDetails(details); err != nil {
		return err
	}
	r.header = header
	r.record(EventUpdated, at, nil)
	return nil
}

// Cancel sets the explicit cancellation marker.
func (r *Redelivery) Cancel(at time.Time) error {
	if err := r.ensureActive(); err != nil {
		return err
	}
	r.cancelled = true
	r.record(EventCancelled, at, nil)
	return nil
}

// HasUnit reports whether unitNumber is listed on any detail.
func (r *Redelivery) HasUnit(unitNumber kernel.UnitNumber) bool {
	_, _, ok := r.findUnit(unitNumber)
	return ok
}

// TurnIn marks a tied unit as received at the depot.
func (r *Redelivery) TurnIn(unitNumber kernel.UnitNumber, at time.Time) error {
	return r.transitionUnit(unitNumber, UnitStatus.TurnIn, EventUnitTurnedIn, at)
}

// RevertTurnIn puts a turned in unit back to TIED.
func (r *Redelivery) RevertTurnIn(unitNumber kernel.UnitNumber, at time.Time) error {
	return r.transitionUnit(unitNumber, UnitStatus.RevertTurnIn, EventUnitReverted, at)
}

// UnitStatus reports the status of a listed unit.
func (r *Redelivery) UnitStatus(unitNumber kernel.UnitNumber) (UnitStatus, bool) {
	di, ui, ok := r.findUnit(unitNumber)
	if !ok {
		return UnitUnknown, false
	}
	return r.details[di].units[ui].status, true
}

// RemoveUnit takes a tied unit off the advice.
func (r *Redelivery) RemoveUnit(unitNumber kernel.UnitNumber, at time.Time) error {
	return r.transitionUnit(unitNumber, UnitStatus.Remove, EventUnitRemoved, at)
}

func (r *Redelivery) transitionUnit(
	unitNumber kernel.UnitNumber,
	transition func(UnitStatus) (UnitStatus, error),
	event string,
	at time.Time,
) error {
	if err := r.ensureActive(); err != nil {
		return err
	}
	di, ui, ok := r.findUnit(unitNumber)
	if !ok {
		return errs.NewObjectNotFoundError("unit", unitNumber.String())
	}
	next, err := transition(r.details[di].units[ui].status)
	if err != nil {
		return err
	}
	r.details[di].units[ui].status = next
	r.record(event, at, map[string]string{"unitNumber": unitNumber.String()})
	return nil
}

func (r *Redelivery) findUnit(unitNumber kernel.UnitNumber) (int, int, bool) {
	for di, d := range r.details {
		for ui, u := range d.units {
			if u.unitNumber.IsEqual(unitNumber) {
				return di, ui, true
			}
		}
	}
	return 0, 0, false
}

func (r *Redelivery) ensureActive() error {
	if r.cancelled {
		return errs.NewConflictError("redelivery", r.header.Number(), "is cancelled")
	}
	return nil
}

func (r *Redelivery) setDetails(details []Detail) error {
	if len(details) == 0 {
		return errs.NewValueIsRequiredError("details")
	}
	seen := make(map[string]struct{})
	for i, d := range details {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("details[%d]: %w", i, err)
		}
		for _, u := range d.units {
			if _, dup := seen[u.unitNumber.String()]; dup {
				return errs.NewInvariantViolatedError("",
					fmt.Sprintf("unit %s is listed on more than one detail", u.unitNumber))
			}
			seen[u.unitNumber.String()] = struct{}{}
		}
	}
	r.details = make([]Detail, len(details))
	for i, d := range details {
		d.units = append([]Unit(nil), d.units...)
		r.details[i] = d
	}
	return nil
}

func (r *Redelivery) record(name string, at time.Time, attrs map[string]string) {
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs["depot"] = r.header.Depot().String()
	r.RecordEvent(kernel.NewDomainEvent(name, r.header.Number(), at, attrs))
}
