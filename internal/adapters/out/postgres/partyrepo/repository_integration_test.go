package partyrepo_test

import (
	"context"
	"testing"

	"depot/internal/adapters/out/postgres/partyrepo"
	"depot/internal/adapters/out/postgres/pgtest"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type PartyRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *partyrepo.GormPartyRepository
}

func (suite *PartyRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *PartyRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = partyrepo.NewGormPartyRepository(suite.database.DB)
}

func (suite *PartyRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *PartyRepositoryIntegrationTestSuite) TestSave_NewInternalParty_Persisted() {
	ctx := context.Background()
	p := suite.internalParty("DEHAMDEP1", "Hamburg Depot")

	saved, err := suite.repository.Save(ctx, p)
	suite.Require().NoError(err)

	suite.True(saved.ID().IsEqual(p.ID()))
	found, err := suite.repository.Find(ctx, party.KeyOf("DEHAMDEP1", ""))
	suite.Require().NoError(err)
	suite.Equal(party.KindInternal, found.Kind())
	suite.Equal("Hamburg Depot", found.Contact().Name())
	suite.Equal([]string{"gate@hamburg.example"}, found.Contact().Emails())
}

func (suite *PartyRepositoryIntegrationTestSuite) TestSave_ExistingKey_ReturnsStoredParty() {
	ctx := context.Background()
	first := suite.internalParty("DEHAMDEP1", "Hamburg Depot")
	_, err := suite.repository.Save(ctx, first)
	suite.Require().NoError(err)

	second := suite.internalParty("DEHAMDEP1", "Renamed")
	saved, err := suite.repository.Save(ctx, second)
	suite.Require().NoError(err)

	suite.True(saved.ID().IsEqual(first.ID()))
	suite.Equal("Hamburg Depot", saved.Contact().Name())
	suite.assertPartyCount(1)
}

func (suite *PartyRepositoryIntegrationTestSuite) TestSave_ExternalPartyByCode() {
	ctx := context.Background()
	contact, err := party.NewContact("Maersk", "", "", "", "", nil)
	suite.Require().NoError(err)
	p, err := party.NewExternalParty(kernel.NewUUID(), "Recipient", "", "MSK", contact)
	suite.Require().NoError(err)

	_, err = suite.repository.Save(ctx, p)
	suite.Require().NoError(err)

	found, err := suite.repository.Find(ctx, party.KeyOf("", "MSK"))
	suite.Require().NoError(err)
	suite.Equal(party.KindExternal, found.Kind())
	suite.Equal("MSK", found.Code())
	suite.True(found.CompanyID().IsZero())
}

func (suite *PartyRepositoryIntegrationTestSuite) TestFind_Unknown_NotFound() {
	_, err := suite.repository.Find(context.Background(), party.KeyOf("NOSUCHONE", ""))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PartyRepositoryIntegrationTestSuite) internalParty(companyID, name string) *party.Party {
	cid, err := kernel.NewCompanyID(companyID)
	suite.Require().NoError(err)
	contact, err := party.NewContact(name, "Am Kai 1", "Hamburg", "DE", "", []string{"gate@hamburg.example"})
	suite.Require().NoError(err)
	p, err := party.NewParty(kernel.NewUUID(), cid, contact)
	suite.Require().NoError(err)
	return p
}

func (suite *PartyRepositoryIntegrationTestSuite) assertPartyCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.database.DB.Model(&partyrepo.PartyDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestPartyRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PartyRepositoryIntegrationTestSuite))
}
