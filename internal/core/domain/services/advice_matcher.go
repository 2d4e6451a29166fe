package services

import (
	"fmt"
	"time"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/gate"
	"depot/internal/core/domain/model/redelivery"
	"depot/internal/core/domain/model/release"
	"depot/internal/pkg/errs"
)

// AdviceMatcher applies a gate movement to the advice that authorised it.
//
// Business rules:
//   - a gate IN turns in the unit on the matching redelivery
//   - a gate OUT lots the unit on the matching release
//   - the advice must belong to the gate depot and be APPROVED at the activity time
//   - the unit must be listed on the advice
//   - deleting a matched gate record puts the unit back to TIED
//
// Example usage:
//
//	matcher := services.NewAdviceMatcher()
//	if err := matcher.MatchIn(record, redelivery, now); err != nil {
//	    return err
//	}
type AdviceMatcher struct{}

func NewAdviceMatcher() AdviceMatcher {
	return AdviceMatcher{}
}

// MatchIn turns in the unit of a gate IN record on redelivery r.
func (m AdviceMatcher) MatchIn(record *gate.Record, r *redelivery.Redelivery, now time.Time) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := m.check(record, gate.DirectionIn, "redelivery", r.Number(), r.Header(), r.Status(record.ActivityTime())); err != nil {
		return err
	}
	return r.TurnIn(record.UnitNumber(), now)
}

// MatchOut lots the unit of a gate OUT record on release r.
func (m AdviceMatcher) MatchOut(record *gate.Record, r *release.Release, now time.Time) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := m.check(record, gate.DirectionOut, "release", r.Number(), r.Header(), r.Status(record.ActivityTime())); err != nil {
		return err
	}
	return r.Lot(record.UnitNumber(), now)
}

func (m AdviceMatcher) check(
	record *gate.Record,
	direction gate.Direction,
	kind, number string,
	header advice.Header,
	status advice.Status,
) error {
	if record.Direction() != direction {
		return errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("gate %s cannot be matched against a %s", record.Direction(), kind))
	}
	if record.AdviceNumber() != number {
		return errs.NewValueIsInvalidErrorWithCause("adviceNumber",
			fmt.Errorf("%s is not %s %s", record.AdviceNumber(), kind, number))
	}
	if record.Depot().Key() != header.Depot().Key() {
		return errs.NewConflictError(kind, number, fmt.Sprintf("is not advised to depot %s", record.Depot()))
	}
	if status != advice.Approved {
		return errs.NewConflictError(kind, number, fmt.Sprintf("is %s", status))
	}
	return nil
}

// UnmatchIn reverts the turn in a deleted gate IN record made on redelivery r.
// It reports false when the record never matched r or r is cancelled.
func (m AdviceMatcher) UnmatchIn(record *gate.Record, r *redelivery.Redelivery, now time.Time) (bool, error) {
	if !m.matched(record, gate.DirectionIn, r.Number(), r.Header(), r.IsCancelled()) {
		return false, nil
	}
	status, ok := r.UnitStatus(record.UnitNumber())
	if !ok || status != redelivery.UnitTurnedIn {
		return false, nil
	}
	return true, r.RevertTurnIn(record.UnitNumber(), now)
}

// UnmatchOut reverts the lot a deleted gate OUT record made on release r.
func (m AdviceMatcher) UnmatchOut(record *gate.Record, r *release.Release, now time.Time) (bool, error) {
	if !m.matched(record, gate.DirectionOut, r.Number(), r.Header(), r.IsCancelled()) {
		return false, nil
	}
	status, ok := r.UnitStatus(record.UnitNumber())
	if !ok || status != release.UnitLotted {
		return false, nil
	}
	return true, r.RevertLot(record.UnitNumber(), now)
}

func (m AdviceMatcher) matched(
	record *gate.Record,
	direction gate.Direction,
	number string,
	header advice.Header,
	cancelled bool,
) bool {
	return !cancelled &&
		record.Direction() == direction &&
		record.AdviceNumber() == number &&
		record.Depot().Key() == header.Depot().Key()
}
