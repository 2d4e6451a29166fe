package gate

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

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

const (
	EventRecorded = "GateRecorded"
	EventUpdated  = "GateUpdated"
	EventDeleted  = "GateDeleted"
)

// Key identifies a gate record: one movement of a unit in one direction
// against one advice at one depot.
type Key struct {
	UnitNumber   string
	AdviceNumber string
	Depot        string
	Direction    Direction
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.Depot, k.AdviceNumber, k.UnitNumber, k.Direction)
}

// Record is a point in time movement of a unit through the depot gate.
// Records are never physically removed; Delete sets a marker.
type Record struct {
	kernel.EventRecorder

	seq          int64
	unitNumber   kernel.UnitNumber
	adviceNumber string
	depot        party.Ref
	direction    Direction
	condition    Condition
	activityTime time.Time
	remarks      string
	deleted      bool
	guard        guard.ConstructorGuard
}

// NewRecord creates an unsaved record; its sequence is assigned on insert.
func NewRecord(
	unitNumber kernel.UnitNumber,
	adviceNumber string,
	depot party.Ref,
	direction Direction,
	condition Condition,
	activityTime time.Time,
	remarks string,
	at time.Time,
) (*Record, error) {
	r, err := RestoreRecord(0, unitNumber, adviceNumber, depot, direction, condition, activityTime, remarks, false)
	if err != nil {
		return nil, err
	}
	r.record(EventRecorded, at)
	return r, nil
}

func RestoreRecord(
	seq int64,
	unitNumber kernel.UnitNumber,
	adviceNumber string,
	depot party.Ref,
	direction Direction,
	condition Condition,
	activityTime time.Time,
	remarks string,
	deleted bool,
) (*Record, error) {
	r := &Record{seq: seq, deleted: deleted, guard: guard.NewConstructorGuard()}

	var errAdvice error
	r.adviceNumber, errAdvice = kernel.RequiredText("adviceNumber", adviceNumber, kernel.KeyMaxLength)

	if err := errors.Join(
		unitNumber.Validate(),
		errAdvice,
		advice.RequiredRef("depot", depot),
		direction.Validate(),
		r.setActivity(condition, activityTime, remarks),
	); err != nil {
		return nil, err
	}
	r.unitNumber = unitNumber
	r.depot = depot
	r.direction = direction
	return r, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) Key() Key {
	return Key{
		UnitNumber:   r.unitNumber.String(),
		AdviceNumber: r.adviceNumber,
		Depot:        r.depot.String(),
		Direction:    r.direction,
	}
}

func (r *Record) Seq() int64                    { return r.seq }
func (r *Record) UnitNumber() kernel.UnitNumber { return r.unitNumber }
func (r *Record) AdviceNumber() string          { return r.adviceNumber }
func (r *Record) Depot() party.Ref              { return r.depot }
func (r *Record) Direction() Direction          { return r.direction }
func (r *Record) Condition() Condition          { return r.condition }
func (r *Record) ActivityTime() time.Time       { return r.activityTime }
func (r *Record) Remarks() string               { return r.remarks }
func (r *Record) IsDeleted() bool               { return r.deleted }

// AssignSeq stores the insertion sequence handed out by the store.
func (r *Record) AssignSeq(seq int64) {
	r.seq = seq
}

// Update corrects condition, activity time and remarks of a live record.
func (r *Record) Update(condition Condition, activityTime time.Time, remarks string, at time.Time) error {
	if r.deleted {
		return errs.NewConflictError("gate", r.Key(), "is deleted")
	}
	if err := r.setActivity(condition, activityTime, remarks); err != nil {
		return err
	}
	r.record(EventUpdated, at)
	return nil
}

// Delete marks the record deleted. It no longer takes part in Current.
func (r *Record) Delete(at time.Time) error {
	if r.deleted {
		return errs.NewConflictError("gate", r.Key(), "is deleted")
	}
	r.deleted = true
	r.record(EventDeleted, at)
	return nil
}

func (r *Record) setActivity(condition Condition, activityTime time.Time, remarks string) error {
	var errTime error
	if activityTime.IsZero() {
		errTime = errs.NewValueIsRequiredError("activityTime")
	}
	text, errRemarks := kernel.BoundedText("remarks", remarks, kernel.RemarksMaxLength)
	if err := errors.Join(condition.Validate(), errTime, errRemarks); err != nil {
		return err
	}
	r.condition = condition
	r.activityTime = activityTime.UTC()
	r.remarks = text
	return nil
}

func (r *Record) record(name string, at time.Time) {
	r.RecordEvent(kernel.NewDomainEvent(name, r.unitNumber.String(), at, map[string]string{
		"depot":        r.depot.String(),
		"adviceNumber": r.adviceNumber,
		"type":         r.direction.String(),
		"status":       r.condition.String(),
		"activityTime": r.activityTime.Format(time.RFC3339),
	}))
}

// Current returns the live record with the latest activity time. Records
// sharing an activity time are ordered by insertion sequence, the last one
// inserted wins. Returns nil when no live record exists.
func Current(records []*Record) *Record {
	var current *Record
	for _, r := range records {
		if r == nil || r.deleted {
			continue
		}
		if current == nil || isLater(r, current) {
			current = r
		}
	}
	return current
}

func isLater(a, b *Record) bool {
	if !a.activityTime.Equal(b.activityTime) {
		return a.activityTime.After(b.activityTime)
	}
	return a.seq > b.seq
}
