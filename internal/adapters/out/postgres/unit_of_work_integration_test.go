package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "depot/internal/adapters/out/postgres"
	"depot/internal/adapters/out/postgres/pgtest"
	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/gate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/core/domain/model/redelivery"
	"depot/internal/core/ports"
	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var approvedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite exercises transactions and the outbox
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.RedeliveryRepository())
	suite.NotNil(uow2.GateRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WritesEventsToOutbox() {
	ctx := context.Background()
	r := suite.newRedelivery("AHAMG33141")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RedeliveryRepository().Add(ctx, r))
	suite.Require().NoError(r.Cancel(approvedAt.Add(time.Hour)))
	suite.Require().NoError(uow.RedeliveryRepository().Update(ctx, r))
	suite.Require().NoError(uow.Commit(ctx))

	pending, err := suite.factory.Create().OutboxRepository().ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2, "An aggregate saved twice contributes its events once")
	suite.Equal(redelivery.EventCreated, pending[0].Name())
	suite.Equal(redelivery.EventCancelled, pending[1].Name())
	suite.Empty(r.DomainEvents(), "Events are cleared after commit")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsRowsAndEvents() {
	ctx := context.Background()
	r := suite.newRedelivery("AHAMG33141")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RedeliveryRepository().Add(ctx, r))
	suite.Require().NoError(uow.Rollback(ctx))

	exists, err := suite.factory.Create().RedeliveryRepository().Exists(ctx, "AHAMG33141")
	suite.Require().NoError(err)
	suite.False(exists)

	pending, err := suite.factory.Create().OutboxRepository().ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
	suite.Len(r.DomainEvents(), 1, "Events stay on the aggregate after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMultiRepositoryTransaction_FailureLeavesNothing() {
	ctx := context.Background()
	un, err := kernel.NewUnitNumber("TRLU1234567")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	suite.Require().NoError(uow.RedeliveryRepository().Add(ctx, suite.newRedelivery("AHAMG33141")))
	record, err := gate.NewRecord(un, "AHAMG33141", party.RestoreRef("DEHAMDEP1", ""),
		gate.DirectionIn, gate.ConditionSound, approvedAt, "", approvedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.GateRepository().Add(ctx, record))

	err = uow.RedeliveryRepository().Add(ctx, suite.newRedelivery("AHAMG33141"))
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Require().NoError(uow.Rollback(ctx))

	history, err := suite.factory.Create().GateRepository().ListByUnit(ctx, un)
	suite.Require().NoError(err)
	suite.Empty(history)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWithoutTransaction_UsesPool() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.RedeliveryRepository().Add(ctx, suite.newRedelivery("AHAMG33141")))

	stored, err := suite.factory.Create().RedeliveryRepository().Get(ctx, "AHAMG33141")
	suite.Require().NoError(err)
	suite.Equal("AHAMG33141", stored.Number())
}

func (suite *UnitOfWorkIntegrationTestSuite) newRedelivery(number string) *redelivery.Redelivery {
	un, err := kernel.NewUnitNumber("TRLU1234567")
	suite.Require().NoError(err)
	billing := party.RestoreRef("", "BILL01")

	header, err := advice.NewHeader("redeliveryNumber", number,
		party.RestoreRef("DEHAMDEP1", ""), party.RestoreRef("", "MSK"), approvedAt, nil, "")
	suite.Require().NoError(err)
	unit, err := redelivery.NewUnit(un, approvedAt.AddDate(-5, 0, 0), nil, "", billing)
	suite.Require().NoError(err)
	detail, err := redelivery.NewDetail(party.RestoreRef("CUSTOMER1", ""), "C-100", "22G1",
		party.Ref{}, "", billing, 1, []redelivery.Unit{unit})
	suite.Require().NoError(err)

	r, err := redelivery.NewRedelivery(header, []redelivery.Detail{detail}, approvedAt)
	suite.Require().NoError(err)
	return r
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
