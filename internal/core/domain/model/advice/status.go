package advice

import (
	"fmt"
	"time"

	"depot/internal/pkg/errs"
)

// Status is the derived lifecycle state of a redelivery or release advice.
// It is never stored; Derive computes it from the record and a point in time.
type Status int

const (
	Unknown Status = iota
	Pending
	Approved
	Complete
	Expired
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Approved:  "APPROVED",
		Complete:  "COMPLETE",
		Expired:   "EXPIRED",
		Cancelled: "CANCELLED",
	}
}

func (s Status) String() string {
	if v, ok := getStatusStrings()[s]; ok {
		return v
	}
	return getStatusStrings()[Unknown]
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsOpen reports whether gate activity may still be matched against the advice.
func (s Status) IsOpen() bool {
	return s == Pending || s == Approved
}

// Progress counts the units of an advice. Removed units are not counted.
type Progress struct {
	Active   int
	Terminal int
}

// Add merges the counts of another detail.
func (p Progress) Add(other Progress) Progress {
	return Progress{Active: p.Active + other.Active, Terminal: p.Terminal + other.Terminal}
}

// IsComplete reports at least one active unit with every active unit terminal.
func (p Progress) IsComplete() bool {
	return p.Active > 0 && p.Terminal == p.Active
}

// Derive evaluates, in order: cancellation marker, expiration, completion,
// approval date.
func Derive(cancelled bool, approvalDate time.Time, expirationDate *time.Time, progress Progress, now time.Time) Status {
	switch {
	case cancelled:
		return Cancelled
	case expirationDate != nil && now.After(*expirationDate):
		return Expired
	case progress.IsComplete():
		return Complete
	case !approvalDate.After(now):
		return Approved
	default:
		return Pending
	}
}
