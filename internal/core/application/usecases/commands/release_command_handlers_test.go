package commands_test

import (
	"testing"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/core/domain/model/release"
	"depot/internal/pkg/errs"

	"github.com/im7mortal/kmutex"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func releasePayload(number string) requests.Release {
	return requests.Release{
		ReleaseNumber: number,
		Type:          "SALE",
		Owner:         requests.ExternalParty{CompanyID: "OWNERCO01"},
		Depot:         requests.Party{CompanyID: "DEHAMDEP1"},
		Recipient:     requests.ExternalParty{Code: "HAPAG"},
		ApprovalDate:  approved,
		Details: []requests.ReleaseDetail{{
			Customer:  requests.ExternalParty{CompanyID: "CUSTOMER1"},
			Contract:  "CTR-2026",
			Equipment: "45G1",
			Quantity:  3,
			Criteria:  []requests.ReleaseCriterion{{Key: "grade", Value: "CW"}},
			Units:     []requests.ReleaseUnit{{UnitNumber: "TRLU1234567"}},
		}},
	}
}

func storedRelease(t *testing.T, number string) *release.Release {
	t.Helper()
	un, err := kernel.NewUnitNumber("TRLU1234567")
	require.NoError(t, err)
	unit, err := release.NewUnit(un)
	require.NoError(t, err)
	detail, err := release.NewDetail(party.RestoreRef("CUSTOMER1", ""), "CTR-2026", "45G1", 3, nil,
		[]release.Unit{unit})
	require.NoError(t, err)
	header, err := advice.NewHeader("releaseNumber", number,
		party.RestoreRef("DEHAMDEP1", ""), party.RestoreRef("", "HAPAG"), approved, nil, "")
	require.NoError(t, err)
	r, err := release.RestoreRelease(header, release.TypeSale, party.RestoreRef("OWNERCO01", ""),
		[]release.Detail{detail}, false)
	require.NoError(t, err)
	return r
}

type releaseFixture struct {
	partyRepo  *MockPartyRepository
	repo       *MockReleaseRepository
	uow        *MockUoW
	uowFactory *MockReleaseUoWFactory
}

func newReleaseFixture() releaseFixture {
	f := releaseFixture{
		partyRepo:  &MockPartyRepository{},
		repo:       &MockReleaseRepository{},
		uow:        &MockUoW{},
		uowFactory: &MockReleaseUoWFactory{},
	}
	f.uowFactory.On("Create").Return(f.uow)
	f.uow.On("PartyRepository").Return(f.partyRepo)
	f.uow.On("ReleaseRepository").Return(f.repo)
	f.partyRepo.On("Save", mock.Anything, mock.Anything).Return(nil, nil)
	return f
}

func TestCreateReleaseCommandHandler(t *testing.T) {
	ctx := t.Context()

	t.Run("should store a new release with its owner", func(t *testing.T) {
		f := newReleaseFixture()
		cmd, err := commands.NewCreateReleaseCommand(internal, releasePayload("REL0001"))
		require.NoError(t, err)

		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil),
			f.repo.On("Exists", ctx, "REL0001").Return(false, nil),
			f.repo.On("Add", ctx, mock.MatchedBy(func(r *release.Release) bool {
				return r.Number() == "REL0001" &&
					r.Type() == release.TypeSale &&
					r.Owner().CompanyID() == "OWNERCO01"
			})).Return(nil),
			f.uow.On("Commit", ctx).Return(nil),
			f.uow.On("Rollback", ctx).Return(nil),
		)

		handler := commands.NewCreateReleaseCommandHandler(f.uowFactory, kmutex.New(), testclock.NewClock(now))
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		f.uow.AssertExpectations(t)
		f.repo.AssertExpectations(t)
		f.partyRepo.AssertNumberOfCalls(t, "Save", 4)
	})

	t.Run("should reject a known number from an internal caller", func(t *testing.T) {
		f := newReleaseFixture()
		cmd, err := commands.NewCreateReleaseCommand(internal, releasePayload("REL0001"))
		require.NoError(t, err)

		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil),
			f.repo.On("Exists", ctx, "REL0001").Return(true, nil),
			f.uow.On("Rollback", ctx).Return(nil),
		)

		handler := commands.NewCreateReleaseCommandHandler(f.uowFactory, kmutex.New(), testclock.NewClock(now))
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		f.repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should fail with not constructed command", func(t *testing.T) {
		handler := commands.NewCreateReleaseCommandHandler(
			&MockReleaseUoWFactory{}, kmutex.New(), testclock.NewClock(now))

		err := handler.Handle(ctx, commands.CreateReleaseCommand{})

		require.ErrorIs(t, err, commands.ErrCreateReleaseCommandIsNotConstructed)
	})
}

func TestUpdateReleaseCommandHandler(t *testing.T) {
	ctx := t.Context()

	t.Run("should replace a known release", func(t *testing.T) {
		f := newReleaseFixture()
		payload := releasePayload("")
		payload.Type = "BOOK"
		cmd, err := commands.NewUpdateReleaseCommand(internal, "REL0001", payload)
		require.NoError(t, err)

		stored := storedRelease(t, "REL0001")
		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil),
			f.repo.On("Exists", ctx, "REL0001").Return(true, nil),
			f.repo.On("Get", ctx, "REL0001").Return(stored, nil),
			f.repo.On("Update", ctx, stored).Return(nil),
			f.uow.On("Commit", ctx).Return(nil),
			f.uow.On("Rollback", ctx).Return(nil),
		)

		handler := commands.NewUpdateReleaseCommandHandler(f.uowFactory, kmutex.New(), testclock.NewClock(now))
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, release.TypeBook, stored.Type())
		f.repo.AssertExpectations(t)
	})

	t.Run("should reject a body addressed to another release", func(t *testing.T) {
		_, err := commands.NewUpdateReleaseCommand(internal, "REL0001", releasePayload("REL0002"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCancelReleaseCommandHandler(t *testing.T) {
	ctx := t.Context()

	newCancel := func(stored *release.Release) (*MockReleaseRepository, *MockUoW, *MockReleaseUoWFactory) {
		repo := &MockReleaseRepository{}
		uow := &MockUoW{}
		uowFactory := &MockReleaseUoWFactory{}
		uowFactory.On("Create").Return(uow)
		uow.On("ReleaseRepository").Return(repo)
		uow.On("Begin", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		repo.On("Get", ctx, "REL0001").Return(stored, nil)
		return repo, uow, uowFactory
	}

	t.Run("should cancel an active release", func(t *testing.T) {
		stored := storedRelease(t, "REL0001")
		repo, uow, uowFactory := newCancel(stored)
		repo.On("Update", ctx, stored).Return(nil)
		uow.On("Commit", ctx).Return(nil)

		cmd, err := commands.NewCancelReleaseCommand(internal, "REL0001")
		require.NoError(t, err)

		handler := commands.NewCancelReleaseCommandHandler(uowFactory, kmutex.New(), testclock.NewClock(now))
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, advice.Cancelled, stored.Status(now))
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("should refuse to cancel twice", func(t *testing.T) {
		stored := storedRelease(t, "REL0001")
		require.NoError(t, stored.Cancel(now))
		repo, uow, uowFactory := newCancel(stored)

		cmd, err := commands.NewCancelReleaseCommand(internal, "REL0001")
		require.NoError(t, err)

		handler := commands.NewCancelReleaseCommandHandler(uowFactory, kmutex.New(), testclock.NewClock(now))
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
