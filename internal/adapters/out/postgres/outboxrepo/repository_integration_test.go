package outboxrepo_test

import (
	"context"
	"testing"
	"time"

	"depot/internal/adapters/out/postgres/outboxrepo"
	"depot/internal/adapters/out/postgres/pgtest"
	"depot/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

var occurredAt = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.database.DB)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAppend_ListPending_RoundTrip() {
	ctx := context.Background()
	later := kernel.NewDomainEvent("GateRecorded", "TRLU1234567", occurredAt.Add(time.Minute),
		map[string]string{"type": "IN"})
	earlier := kernel.NewDomainEvent("RedeliveryCreated", "AHAMG33141", occurredAt, nil)

	suite.Require().NoError(suite.repository.Append(ctx, []kernel.DomainEvent{earlier, later}))

	pending, err := suite.repository.ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.True(pending[0].ID().IsEqual(earlier.ID()))
	suite.Equal("GateRecorded", pending[1].Name())
	suite.Equal("IN", pending[1].Attributes()["type"])
	suite.True(occurredAt.Add(time.Minute).Equal(pending[1].OccurredAt()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestListPending_KeepsAppendOrderForEqualTimes() {
	ctx := context.Background()
	created := kernel.NewDomainEvent("RedeliveryCreated", "AHAMG33141", occurredAt, nil)
	turnedIn := kernel.NewDomainEvent("RedeliveryUnitTurnedIn", "AHAMG33141", occurredAt, nil)
	closed := kernel.NewDomainEvent("RedeliveryClosed", "AHAMG33141", occurredAt, nil)
	suite.Require().NoError(suite.repository.Append(ctx, []kernel.DomainEvent{created, turnedIn}))
	suite.Require().NoError(suite.repository.Append(ctx, []kernel.DomainEvent{closed}))

	pending, err := suite.repository.ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 3)
	suite.Equal([]string{"RedeliveryCreated", "RedeliveryUnitTurnedIn", "RedeliveryClosed"},
		[]string{pending[0].Name(), pending[1].Name(), pending[2].Name()})
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkPublished_HidesEvents() {
	ctx := context.Background()
	first := kernel.NewDomainEvent("RedeliveryCreated", "AHAMG33141", occurredAt, nil)
	second := kernel.NewDomainEvent("RedeliveryUpdated", "AHAMG33141", occurredAt.Add(time.Second), nil)
	suite.Require().NoError(suite.repository.Append(ctx, []kernel.DomainEvent{first, second}))

	suite.Require().NoError(suite.repository.MarkPublished(ctx, []kernel.UUID{first.ID()}, occurredAt.Add(time.Hour)))

	pending, err := suite.repository.ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].ID().IsEqual(second.ID()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestListPending_RespectsLimit() {
	ctx := context.Background()
	events := make([]kernel.DomainEvent, 0, 5)
	for i := range 5 {
		events = append(events, kernel.NewDomainEvent("GateRecorded", "TRLU1234567",
			occurredAt.Add(time.Duration(i)*time.Second), nil))
	}
	suite.Require().NoError(suite.repository.Append(ctx, events))

	pending, err := suite.repository.ListPending(ctx, 3)
	suite.Require().NoError(err)
	suite.Len(pending, 3)
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
