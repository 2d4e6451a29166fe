package release

import (
	"errors"
	"fmt"
	"time"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrReleaseIsNotConstructed = errors.New("Release must be created via NewRelease constructor")

const (
	EventCreated         = "ReleaseCreated"
	EventUpdated         = "ReleaseUpdated"
	EventCancelled       = "ReleaseCancelled"
	EventUnitLotted      = "ReleaseUnitLotted"
	EventUnitTied        = "ReleaseUnitTied"
	EventUnitRemoved     = "ReleaseUnitRemoved"
	EventUnitLotReverted = "ReleaseUnitLotReverted"
)

// Release is an advice permitting the removal of containers from a depot.
// It mirrors a redelivery and adds the release type and the owner.
type Release struct {
	kernel.EventRecorder

	header    advice.Header
	kind      Type
	owner     party.Ref
	details   []Detail
	cancelled bool
	guard     guard.ConstructorGuard
}

func NewRelease(header advice.Header, kind Type, owner party.Ref, details []Detail, at time.Time) (*Release, error) {
	r, err := RestoreRelease(header, kind, owner, details, false)
	if err != nil {
		return nil, err
	}
	r.record(EventCreated, at, nil)
	return r, nil
}

func RestoreRelease(header advice.Header, kind Type, owner party.Ref, details []Detail, cancelled bool) (*Release, error) {
	r := &Release{guard: guard.NewConstructorGuard(), cancelled: cancelled}
	if err := errors.Join(
		header.Validate(),
		kind.Validate(),
		advice.RequiredRef("owner", owner),
		r.setDetails(details),
	); err != nil {
		return nil, err
	}
	r.header = header
	r.kind = kind
	r.owner = owner
	return r, nil
}

func (r *Release) Validate() error {
	if r == nil {
		return ErrReleaseIsNotConstructed
	}
	return r.guard.Validate(ErrReleaseIsNotConstructed)
}

func (r *Release) Number() string        { return r.header.Number() }
func (r *Release) Header() advice.Header { return r.header }
func (r *Release) Type() Type            { return r.kind }
func (r *Release) Owner() party.Ref      { return r.owner }
func (r *Release) IsCancelled() bool     { return r.cancelled }

func (r *Release) Details() []Detail {
	return append([]Detail(nil), r.details...)
}

func (r *Release) Progress() advice.Progress {
	var p advice.Progress
	for _, d := range r.details {
		p = p.Add(d.Progress())
	}
	return p
}

// Status derives the lifecycle state at now. Lotted units are terminal.
func (r *Release) Status(now time.Time) advice.Status {
	return advice.Derive(r.cancelled, r.header.ApprovalDate(), r.header.ExpirationDate(), r.Progress(), now)
}

// Replace swaps every field but the release number.
func (r *Release) Replace(header advice.Header, kind Type, owner party.Ref, details []Detail, at time.Time) error {
	if err := r.ensureActive(); err != nil {
		return err
	}
	if err := errors.Join(header.Validate(), kind.Validate(), advice.RequiredRef("owner", owner)); err != nil {
		return err
	}
	if header.Number() != r.header.Number() {
		return errs.NewValueIsInvalidErrorWithCause("releaseNumber",
			fmt.Errorf("%s cannot replace %s", header.Number(), r.header.Number()))
	}
	if err := r.setDetails(details); err != nil {
		return err
	}
	r.header = header
	r.kind = kind
	r.owner = owner
	r.record(EventUpdated, at, nil)
	return nil
}

func (r *Release) Cancel(at time.Time) error {
	if err := r.ensureActive(); err != nil {
		return err
	}
	r.cancelled = true
	r.record(EventCancelled, at, nil)
	return nil
}

func (r *Release) HasUnit(unitNumber kernel.UnitNumber) bool {
	_, _, ok := r.findUnit(unitNumber)
	return ok
}

// Lot marks a unit as gone out of the depot.
func (r *Release) Lot(unitNumber kernel.UnitNumber, at time.Time) error {
	return r.transitionUnit(unitNumber, UnitStatus.Lot, EventUnitLotted, at)
}

// RevertLot puts a lotted unit back to TIED.
func (r *Release) RevertLot(unitNumber kernel.UnitNumber, at time.Time) error {
	return r.transitionUnit(unitNumber, UnitStatus.RevertLot, EventUnitLotReverted, at)
}

func (r *Release) UnitStatus(unitNumber kernel.UnitNumber) (UnitStatus, bool) {
	di, ui, ok := r.findUnit(unitNumber)
	if !ok {
		return UnitUnknown, false
	}
	return r.details[di].units[ui].status, true
}

// Tie confirms a candidate unit proposed by the depot.
func (r *Release) Tie(unitNumber kernel.UnitNumber, at time.Time) error {
	return r.transitionUnit(unitNumber, UnitStatus.Tie, EventUnitTied, at)
}

func (r *Release) RemoveUnit(unitNumber kernel.UnitNumber, at time.Time) error {
	return r.transitionUnit(unitNumber, UnitStatus.Remove, EventUnitRemoved, at)
}

func (r *Release) transitionUnit(
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

func (r *Release) findUnit(unitNumber kernel.UnitNumber) (int, int, bool) {
	for di, d := range r.details {
		for ui, u := range d.units {
			if u.unitNumber.IsEqual(unitNumber) {
				return di, ui, true
			}
		}
	}
	return 0, 0, false
}

func (r *Release) ensureActive() error {
	if r.cancelled {
		return errs.NewConflictError("release", r.header.Number(), "is cancelled")
	}
	return nil
}

func (r *Release) setDetails(details []Detail) error {
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

func (r *Release) record(name string, at time.Time, attrs map[string]string) {
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs["depot"] = r.header.Depot().String()
	attrs["type"] = r.kind.String()
	r.RecordEvent(kernel.NewDomainEvent(name, r.header.Number(), at, attrs))
}
