package services_test

import (
	"testing"
	"time"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/gate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/core/domain/model/redelivery"
	"depot/internal/core/domain/model/release"
	"depot/internal/core/domain/services"
	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	depot    = party.RestoreRef("DEHAMDEP1", "")
	approval = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now      = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
)

func unitNumber(t *testing.T) kernel.UnitNumber {
	t.Helper()
	un, err := kernel.NewUnitNumber("TRLU1234567")
	require.NoError(t, err)
	return un
}

func newRedelivery(t *testing.T) *redelivery.Redelivery {
	t.Helper()
	billing := party.RestoreRef("BILLPARTY", "")
	u, err := redelivery.NewUnit(unitNumber(t), approval.AddDate(-5, 0, 0), nil, "", billing)
	require.NoError(t, err)
	d, err := redelivery.NewDetail(party.RestoreRef("CUSTOMER1", ""), "CTR", "22G1", party.Ref{}, "", billing, 1,
		[]redelivery.Unit{u})
	require.NoError(t, err)
	h, err := advice.NewHeader("redeliveryNumber", "AHAMG33141", depot, party.RestoreRef("", "MSK"), approval, nil, "")
	require.NoError(t, err)
	r, err := redelivery.NewRedelivery(h, []redelivery.Detail{d}, approval)
	require.NoError(t, err)
	return r
}

func newRelease(t *testing.T) *release.Release {
	t.Helper()
	u, err := release.NewUnit(unitNumber(t))
	require.NoError(t, err)
	d, err := release.NewDetail(party.RestoreRef("CUSTOMER1", ""), "CTR", "22G1", 1, nil, []release.Unit{u})
	require.NoError(t, err)
	h, err := advice.NewHeader("releaseNumber", "REL0001", depot, party.RestoreRef("", "MSK"), approval, nil, "")
	require.NoError(t, err)
	r, err := release.NewRelease(h, release.TypeBook, party.RestoreRef("OWNERCO01", ""), []release.Detail{d}, approval)
	require.NoError(t, err)
	return r
}

func newRecord(t *testing.T, adviceNumber string, at party.Ref, direction gate.Direction, activity time.Time) *gate.Record {
	t.Helper()
	r, err := gate.NewRecord(unitNumber(t), adviceNumber, at, direction, gate.ConditionSound, activity, "", now)
	require.NoError(t, err)
	return r
}

func TestAdviceMatcher_MatchIn(t *testing.T) {
	matcher := services.NewAdviceMatcher()

	t.Run("should turn in the unit and complete the redelivery", func(t *testing.T) {
		r := newRedelivery(t)

		err := matcher.MatchIn(newRecord(t, "AHAMG33141", depot, gate.DirectionIn, now), r, now)

		require.NoError(t, err)
		assert.Equal(t, redelivery.UnitTurnedIn, r.Details()[0].Units()[0].Status())
		assert.Equal(t, advice.Complete, r.Status(now))
	})

	t.Run("should reject gate out", func(t *testing.T) {
		err := matcher.MatchIn(newRecord(t, "AHAMG33141", depot, gate.DirectionOut, now), newRedelivery(t), now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject another depot", func(t *testing.T) {
		other := party.RestoreRef("NLRTMDEP1", "")
		err := matcher.MatchIn(newRecord(t, "AHAMG33141", other, gate.DirectionIn, now), newRedelivery(t), now)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should reject activity before approval", func(t *testing.T) {
		early := approval.Add(-time.Hour)
		err := matcher.MatchIn(newRecord(t, "AHAMG33141", depot, gate.DirectionIn, early), newRedelivery(t), now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "PENDING")
	})

	t.Run("should reject cancelled redelivery", func(t *testing.T) {
		r := newRedelivery(t)
		require.NoError(t, r.Cancel(now))

		err := matcher.MatchIn(newRecord(t, "AHAMG33141", depot, gate.DirectionIn, now), r, now)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should reject unconstructed record", func(t *testing.T) {
		err := matcher.MatchIn(&gate.Record{}, newRedelivery(t), now)
		require.ErrorIs(t, err, gate.ErrRecordIsNotConstructed)
	})
}

func TestAdviceMatcher_MatchOut(t *testing.T) {
	matcher := services.NewAdviceMatcher()

	t.Run("should lot the unit", func(t *testing.T) {
		r := newRelease(t)

		err := matcher.MatchOut(newRecord(t, "REL0001", depot, gate.DirectionOut, now), r, now)

		require.NoError(t, err)
		assert.Equal(t, release.UnitLotted, r.Details()[0].Units()[0].Status())
		assert.Equal(t, advice.Complete, r.Status(now))
	})

	t.Run("should reject mismatching advice number", func(t *testing.T) {
		err := matcher.MatchOut(newRecord(t, "REL0002", depot, gate.DirectionOut, now), newRelease(t), now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAdviceMatcher_Unmatch(t *testing.T) {
	matcher := services.NewAdviceMatcher()

	t.Run("should put a turned in unit back to tied", func(t *testing.T) {
		r := newRedelivery(t)
		record := newRecord(t, "AHAMG33141", depot, gate.DirectionIn, now)
		require.NoError(t, matcher.MatchIn(record, r, now))

		changed, err := matcher.UnmatchIn(record, r, now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, redelivery.UnitTied, r.Details()[0].Units()[0].Status())
		assert.Equal(t, advice.Approved, r.Status(now))
		require.NoError(t, matcher.MatchIn(record, r, now))
	})

	t.Run("should leave a unit the record never turned in", func(t *testing.T) {
		r := newRedelivery(t)

		changed, err := matcher.UnmatchIn(newRecord(t, "AHAMG33141", depot, gate.DirectionIn, now), r, now)

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("should ignore a record of another depot", func(t *testing.T) {
		r := newRedelivery(t)
		require.NoError(t, matcher.MatchIn(newRecord(t, "AHAMG33141", depot, gate.DirectionIn, now), r, now))
		other := party.RestoreRef("NLRTMDEP1", "")

		changed, err := matcher.UnmatchIn(newRecord(t, "AHAMG33141", other, gate.DirectionIn, now), r, now)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, redelivery.UnitTurnedIn, r.Details()[0].Units()[0].Status())
	})

	t.Run("should leave a cancelled redelivery alone", func(t *testing.T) {
		r := newRedelivery(t)
		record := newRecord(t, "AHAMG33141", depot, gate.DirectionIn, now)
		require.NoError(t, matcher.MatchIn(record, r, now))
		require.NoError(t, r.Cancel(now))

		changed, err := matcher.UnmatchIn(record, r, now)

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("should put a lotted unit back to tied", func(t *testing.T) {
		r := newRelease(t)
		record := newRecord(t, "REL0001", depot, gate.DirectionOut, now)
		require.NoError(t, matcher.MatchOut(record, r, now))

		changed, err := matcher.UnmatchOut(record, r, now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, release.UnitTied, r.Details()[0].Units()[0].Status())
	})
}
