package estimate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var (
	ErrEstimateIsNotConstructed      = errors.New("Estimate must be created via NewEstimate constructor")
	ErrCancelRequestIsNotConstructed = errors.New("CancelRequest must be created via NewCancelRequest constructor")
)

const (
	EventCreated   = "EstimateCreated"
	EventRevised   = "EstimateRevised"
	EventApproved  = "EstimateApproved"
	EventCancelled = "EstimateCancelled"
)

// Key identifies an estimate independent of its revisions.
type Key struct {
	Number string
	Depot  string
}

func (k Key) String() string {
	return k.Depot + "/" + k.Number
}

// Status is derived from the cancel marker and the current revision.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusApproved
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusApproved:
		return "APPROVED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// CancelRequest is the soft delete marker of an estimate.
type CancelRequest struct {
	reason      string
	requestedBy string
	requestedAt time.Time
	guard       guard.ConstructorGuard
}

func NewCancelRequest(reason, requestedBy string, requestedAt time.Time) (CancelRequest, error) {
	c := CancelRequest{guard: guard.NewConstructorGuard()}
	var errReason, errBy, errAt error
	c.reason, errReason = kernel.BoundedText("reason", reason, kernel.AddressMaxLength)
	c.requestedBy, errBy = kernel.BoundedText("requestedBy", requestedBy, kernel.NameMaxLength)
	if requestedAt.IsZero() {
		errAt = errs.NewValueIsRequiredError("requestedAt")
	}
	if err := errors.Join(errReason, errBy, errAt); err != nil {
		return CancelRequest{}, err
	}
	c.requestedAt = requestedAt.UTC()
	return c, nil
}

func (c CancelRequest) Validate() error        { return c.guard.Validate(ErrCancelRequestIsNotConstructed) }
func (c CancelRequest) Reason() string         { return c.reason }
func (c CancelRequest) RequestedBy() string    { return c.requestedBy }
func (c CancelRequest) RequestedAt() time.Time { return c.requestedAt }

// Estimate is a damage repair proposal for one unit at one depot, kept as an
// append-only list of revisions.
//
// Invariants:
//   - revisions are numbered 1..n without gaps and never change
//   - the current revision is the highest one
//   - a cancelled estimate accepts no revision, approval or second cancel
type Estimate struct {
	kernel.EventRecorder

	number     string
	depot      party.Ref
	unitNumber kernel.UnitNumber
	revisions  []*Revision
	cancel     *CancelRequest
	guard      guard.ConstructorGuard
}

// NewEstimate creates revision 1 from content, checked against policy.
func NewEstimate(
	number string,
	depot party.Ref,
	unitNumber kernel.UnitNumber,
	content Content,
	policy ConditionPolicy,
	at time.Time,
) (*Estimate, error) {
	e := &Estimate{guard: guard.NewConstructorGuard()}

	var errNumber error
	e.number, errNumber = kernel.RequiredText("estimateNumber", number, kernel.KeyMaxLength)
	if err := errors.Join(
		errNumber,
		advice.RequiredRef("depot", depot),
		unitNumber.Validate(),
		content.Validate(),
	); err != nil {
		return nil, err
	}
	if err := policy.Check(ConditionUnknown, content.condition); err != nil {
		return nil, err
	}
	e.depot = depot
	e.unitNumber = unitNumber

	first, err := RestoreRevision(1, content, nil, at)
	if err != nil {
		return nil, err
	}
	e.revisions = []*Revision{first}
	e.record(EventCreated, first, at)
	return e, nil
}

// RestoreEstimate rebuilds an estimate from its stored revisions in any order.
func RestoreEstimate(
	number string,
	depot party.Ref,
	unitNumber kernel.UnitNumber,
	revisions []*Revision,
	cancel *CancelRequest,
) (*Estimate, error) {
	if len(revisions) == 0 {
		return nil, errs.NewValueIsRequiredError("revisions")
	}
	sorted := append([]*Revision(nil), revisions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].number < sorted[j].number })
	for i, r := range sorted {
		if r.number != i+1 {
			return nil, errs.NewRevisionIsInvalidErrorWithCause("revision",
				fmt.Errorf("expected revision %d, found %d", i+1, r.number))
		}
	}
	if cancel != nil {
		if err := cancel.Validate(); err != nil {
			return nil, err
		}
	}
	return &Estimate{
		number:     number,
		depot:      depot,
		unitNumber: unitNumber,
		revisions:  sorted,
		cancel:     cancel,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (e *Estimate) Validate() error {
	if e == nil {
		return ErrEstimateIsNotConstructed
	}
	return e.guard.Validate(ErrEstimateIsNotConstructed)
}

func (e *Estimate) Key() Key                      { return Key{Number: e.number, Depot: e.depot.String()} }
func (e *Estimate) Number() string                { return e.number }
func (e *Estimate) Depot() party.Ref              { return e.depot }
func (e *Estimate) UnitNumber() kernel.UnitNumber { return e.unitNumber }
func (e *Estimate) IsCancelled() bool             { return e.cancel != nil }

// CancelRequest returns nil while the estimate is active.
func (e *Estimate) CancelRequest() *CancelRequest {
	if e.cancel == nil {
		return nil
	}
	c := *e.cancel
	return &c
}

// Revisions returns every revision in ascending order.
func (e *Estimate) Revisions() []*Revision {
	return append([]*Revision(nil), e.revisions...)
}

// Current is the highest revision.
func (e *Estimate) Current() *Revision {
	return e.revisions[len(e.revisions)-1]
}

func (e *Estimate) Status() Status {
	switch {
	case e.cancel != nil:
		return StatusCancelled
	case e.Current().IsApproved():
		return StatusApproved
	default:
		return StatusPending
	}
}

// Revise appends a new revision built from content.
func (e *Estimate) Revise(content Content, policy ConditionPolicy, at time.Time) (*Revision, error) {
	if err := e.ensureActive(); err != nil {
		return nil, err
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}
	if err := policy.Check(e.Current().content.condition, content.condition); err != nil {
		return nil, err
	}
	return e.append(content, nil, EventRevised, at)
}

// Approve appends a copy of the current revision carrying the customer approval.
func (e *Estimate) Approve(approval Approval, at time.Time) (*Revision, error) {
	if err := e.ensureActive(); err != nil {
		return nil, err
	}
	if err := approval.Validate(); err != nil {
		return nil, err
	}
	current := e.Current()
	if current.IsApproved() {
		return nil, errs.NewConflictError("estimate", e.Key(),
			fmt.Sprintf("revision %d is already approved", current.number))
	}
	return e.append(current.content, &approval, EventApproved, at)
}

// Cancel attaches the cancel marker.
func (e *Estimate) Cancel(req CancelRequest) error {
	if err := e.ensureActive(); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	e.cancel = &req
	e.record(EventCancelled, e.Current(), req.requestedAt)
	return nil
}

// Allocation breaks down the current revision. ctl and decision come from an
// external decision process.
func (e *Estimate) Allocation(ctl bool, decision *PreliminaryDecision) Allocation {
	return Allocation{Totals: e.Current().content.totals, CTL: ctl, PreliminaryDecision: decision}
}

func (e *Estimate) append(content Content, approval *Approval, event string, at time.Time) (*Revision, error) {
	next, err := RestoreRevision(e.Current().number+1, content, approval, at)
	if err != nil {
		return nil, err
	}
	e.revisions = append(e.revisions, next)
	e.record(event, next, at)
	return next, nil
}

func (e *Estimate) ensureActive() error {
	if e.cancel != nil {
		return errs.NewConflictError("estimate", e.Key(), "is cancelled")
	}
	return nil
}

func (e *Estimate) record(name string, rev *Revision, at time.Time) {
	e.RecordEvent(kernel.NewDomainEvent(name, e.Key().String(), at, map[string]string{
		"unitNumber": e.unitNumber.String(),
		"revision":   strconv.Itoa(rev.number),
		"condition":  rev.content.condition.String(),
		"total":      rev.content.totals.Total.StringFixed(2),
	}))
}
