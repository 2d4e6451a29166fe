package commands_test

import (
	"testing"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"

	"github.com/im7mortal/kmutex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePartyCommandHandler(t *testing.T) {
	ctx := t.Context()
	registration := requests.PartyRegistration{
		Kind:      "INTERNAL",
		CompanyID: "DEHAMDEP1",
		Contact:   requests.Contact{Name: "Hamburg Depot", Emails: []string{"ops@depot.example"}},
	}

	setup := func() (*MockPartyRepository, *MockUoW, *MockPartyUoWFactory) {
		repo := &MockPartyRepository{}
		uow := &MockUoW{}
		uowFactory := &MockPartyUoWFactory{}
		uowFactory.On("Create").Return(uow)
		uow.On("PartyRepository").Return(repo)
		return repo, uow, uowFactory
	}

	t.Run("should register an unknown party", func(t *testing.T) {
		repo, uow, uowFactory := setup()
		cmd, err := commands.NewCreatePartyCommand(internal, registration)
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil),
			repo.On("Find", ctx, party.Key("DEHAMDEP1")).Return(nil, errs.NewObjectNotFoundError("party", "DEHAMDEP1")),
			repo.On("Save", ctx, mock.MatchedBy(func(p *party.Party) bool {
				return p.Kind() == party.KindInternal && p.Contact().Name() == "Hamburg Depot"
			})).Return(nil, nil),
			uow.On("Commit", ctx).Return(nil),
			uow.On("Rollback", ctx).Return(nil),
		)

		handler := commands.NewCreatePartyCommandHandler(uowFactory, kmutex.New())
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should reject a known party from an internal caller", func(t *testing.T) {
		repo, uow, uowFactory := setup()
		cmd, err := commands.NewCreatePartyCommand(internal, registration)
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil),
			repo.On("Find", ctx, party.Key("DEHAMDEP1")).Return(depotParty(t), nil),
			uow.On("Rollback", ctx).Return(nil),
		)

		handler := commands.NewCreatePartyCommandHandler(uowFactory, kmutex.New())
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("should accept a known party from an external caller", func(t *testing.T) {
		repo, uow, uowFactory := setup()
		cmd, err := commands.NewCreatePartyCommand(external, requests.PartyRegistration{Kind: "EXTERNAL", Code: "MSK"})
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil),
			repo.On("Find", ctx, party.KeyOf("", "MSK")).Return(&party.Party{}, nil),
			uow.On("Commit", ctx).Return(nil),
			uow.On("Rollback", ctx).Return(nil),
		)

		handler := commands.NewCreatePartyCommandHandler(uowFactory, kmutex.New())
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("should reject an external party without identifiers", func(t *testing.T) {
		cmd, err := commands.NewCreatePartyCommand(external, requests.PartyRegistration{Kind: "EXTERNAL"})
		require.NoError(t, err)

		handler := commands.NewCreatePartyCommandHandler(&MockPartyUoWFactory{}, kmutex.New())
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvariantViolated)
		assert.Equal(t, errs.CodeInvariant, errs.CodeOf(err))
	})
}
