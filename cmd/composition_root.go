package cmd

import (
	"log/slog"

	depothttp "depot/internal/adapters/in/http"
	kafkain "depot/internal/adapters/in/kafka"
	"depot/internal/adapters/out/kafka"
	"depot/internal/adapters/out/postgres"
	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/application/usecases/queries"
	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/services"
	"depot/internal/jobs"

	"github.com/im7mortal/kmutex"
	"github.com/juju/clock"
	"gorm.io/gorm"
)

const gateConsumerRetries = 3

// CompositionRoot wires adapters and use cases. Handlers share one key
// locker so commands on the same business key serialize across entry points.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locks      commands.KeyLocker
	clock      clock.Clock
	matcher    services.AdviceMatcher
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:      kmutex.New(),
		clock:      clock.WallClock,
		matcher:    services.NewAdviceMatcher(),
		logger:     logger,
	}
}

func (c *CompositionRoot) partyUoWFactory() commands.PartyUoWFactory {
	return FuncPartyUoWFactory(func() commands.PartyUoW { return c.uowFactory.CreateGorm() })
}

func (c *CompositionRoot) redeliveryUoWFactory() commands.RedeliveryUoWFactory {
	return FuncRedeliveryUoWFactory(func() commands.RedeliveryUoW { return c.uowFactory.CreateGorm() })
}

func (c *CompositionRoot) releaseUoWFactory() commands.ReleaseUoWFactory {
	return FuncReleaseUoWFactory(func() commands.ReleaseUoW { return c.uowFactory.CreateGorm() })
}

func (c *CompositionRoot) gateUoWFactory() commands.GateUoWFactory {
	return FuncGateUoWFactory(func() commands.GateUoW { return c.uowFactory.CreateGorm() })
}

func (c *CompositionRoot) estimateUoWFactory() commands.EstimateUoWFactory {
	return FuncEstimateUoWFactory(func() commands.EstimateUoW { return c.uowFactory.CreateGorm() })
}

func (c *CompositionRoot) workOrderUoWFactory() commands.WorkOrderUoWFactory {
	return FuncWorkOrderUoWFactory(func() commands.WorkOrderUoW { return c.uowFactory.CreateGorm() })
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW { return c.uowFactory.CreateGorm() })
}

func (c *CompositionRoot) conditionPolicy() estimate.ConditionPolicy {
	return estimate.PolicyFor(c.cfg.EstimateStrictConditions)
}

func (c *CompositionRoot) CreateCreatePartyCommandHandler() commands.CreatePartyCommandHandler {
	return commands.NewCreatePartyCommandHandler(c.partyUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateCreateRedeliveryCommandHandler() commands.CreateRedeliveryCommandHandler {
	return commands.NewCreateRedeliveryCommandHandler(c.redeliveryUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateUpdateRedeliveryCommandHandler() commands.UpdateRedeliveryCommandHandler {
	return commands.NewUpdateRedeliveryCommandHandler(c.redeliveryUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateCancelRedeliveryCommandHandler() commands.CancelRedeliveryCommandHandler {
	return commands.NewCancelRedeliveryCommandHandler(c.redeliveryUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateCreateReleaseCommandHandler() commands.CreateReleaseCommandHandler {
	return commands.NewCreateReleaseCommandHandler(c.releaseUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateUpdateReleaseCommandHandler() commands.UpdateReleaseCommandHandler {
	return commands.NewUpdateReleaseCommandHandler(c.releaseUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateCancelReleaseCommandHandler() commands.CancelReleaseCommandHandler {
	return commands.NewCancelReleaseCommandHandler(c.releaseUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateCreateGateCommandHandler() commands.CreateGateCommandHandler {
	return commands.NewCreateGateCommandHandler(c.gateUoWFactory(), c.locks, c.clock, c.matcher)
}

func (c *CompositionRoot) CreateUpdateGateCommandHandler() commands.UpdateGateCommandHandler {
	return commands.NewUpdateGateCommandHandler(c.gateUoWFactory(), c.locks, c.clock, c.matcher)
}

func (c *CompositionRoot) CreateDeleteGateCommandHandler() commands.DeleteGateCommandHandler {
	return commands.NewDeleteGateCommandHandler(c.gateUoWFactory(), c.locks, c.clock, c.matcher)
}

func (c *CompositionRoot) CreateCreateEstimateCommandHandler() commands.CreateEstimateCommandHandler {
	return commands.NewCreateEstimateCommandHandler(c.estimateUoWFactory(), c.locks, c.clock, c.conditionPolicy())
}

func (c *CompositionRoot) CreateReviseEstimateCommandHandler() commands.ReviseEstimateCommandHandler {
	return commands.NewReviseEstimateCommandHandler(c.estimateUoWFactory(), c.locks, c.clock, c.conditionPolicy())
}

func (c *CompositionRoot) CreateApproveEstimateCommandHandler() commands.ApproveEstimateCommandHandler {
	return commands.NewApproveEstimateCommandHandler(c.estimateUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateCancelEstimateCommandHandler() commands.CancelEstimateCommandHandler {
	return commands.NewCancelEstimateCommandHandler(c.estimateUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateCreateWorkOrderCommandHandler() commands.CreateWorkOrderCommandHandler {
	return commands.NewCreateWorkOrderCommandHandler(c.workOrderUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateCompleteWorkOrderUnitCommandHandler() commands.CompleteWorkOrderUnitCommandHandler {
	return commands.NewCompleteWorkOrderUnitCommandHandler(c.workOrderUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateRemoveWorkOrderUnitCommandHandler() commands.RemoveWorkOrderUnitCommandHandler {
	return commands.NewRemoveWorkOrderUnitCommandHandler(c.workOrderUoWFactory(), c.locks, c.clock)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(
	publisher *kafka.EventPublisher,
) commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), publisher, c.clock)
}

func (c *CompositionRoot) CreateGetPartyQueryHandler() queries.GetPartyQueryHandler {
	return queries.NewGetPartyQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRedeliveryQueryHandler() queries.GetRedeliveryQueryHandler {
	return queries.NewGetRedeliveryQueryHandler(c.uowFactory.CreateGorm().RedeliveryRepository(), c.clock)
}

func (c *CompositionRoot) CreateGetReleaseQueryHandler() queries.GetReleaseQueryHandler {
	return queries.NewGetReleaseQueryHandler(c.uowFactory.CreateGorm().ReleaseRepository(), c.clock)
}

func (c *CompositionRoot) CreateGetCurrentGateQueryHandler() queries.GetCurrentGateQueryHandler {
	return queries.NewGetCurrentGateQueryHandler(c.uowFactory.CreateGorm().GateRepository())
}

func (c *CompositionRoot) CreateGetUnitGateHistoryQueryHandler() queries.GetUnitGateHistoryQueryHandler {
	return queries.NewGetUnitGateHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEstimateQueryHandler() queries.GetEstimateQueryHandler {
	return queries.NewGetEstimateQueryHandler(c.uowFactory.CreateGorm().EstimateRepository())
}

func (c *CompositionRoot) CreateGetEstimateAllocationQueryHandler() queries.GetEstimateAllocationQueryHandler {
	return queries.NewGetEstimateAllocationQueryHandler(c.uowFactory.CreateGorm().EstimateRepository())
}

func (c *CompositionRoot) CreateGetWorkOrderQueryHandler() queries.GetWorkOrderQueryHandler {
	return queries.NewGetWorkOrderQueryHandler(c.uowFactory.CreateGorm().WorkOrderRepository())
}

// CreateHTTPServer binds every use case to its route.
func (c *CompositionRoot) CreateHTTPServer() *depothttp.Server {
	createParty := c.CreateCreatePartyCommandHandler()
	createRedelivery := c.CreateCreateRedeliveryCommandHandler()
	updateRedelivery := c.CreateUpdateRedeliveryCommandHandler()
	cancelRedelivery := c.CreateCancelRedeliveryCommandHandler()
	createRelease := c.CreateCreateReleaseCommandHandler()
	updateRelease := c.CreateUpdateReleaseCommandHandler()
	cancelRelease := c.CreateCancelReleaseCommandHandler()
	createGate := c.CreateCreateGateCommandHandler()
	updateGate := c.CreateUpdateGateCommandHandler()
	deleteGate := c.CreateDeleteGateCommandHandler()
	createEstimate := c.CreateCreateEstimateCommandHandler()
	reviseEstimate := c.CreateReviseEstimateCommandHandler()
	approveEstimate := c.CreateApproveEstimateCommandHandler()
	cancelEstimate := c.CreateCancelEstimateCommandHandler()
	createWorkOrder := c.CreateCreateWorkOrderCommandHandler()
	completeUnit := c.CreateCompleteWorkOrderUnitCommandHandler()
	removeUnit := c.CreateRemoveWorkOrderUnitCommandHandler()

	return depothttp.NewServer(depothttp.Handlers{
		CreateParty: &createParty,
		GetParty:    c.CreateGetPartyQueryHandler(),

		CreateRedelivery: &createRedelivery,
		UpdateRedelivery: &updateRedelivery,
		CancelRedelivery: &cancelRedelivery,
		GetRedelivery:    c.CreateGetRedeliveryQueryHandler(),

		CreateRelease: &createRelease,
		UpdateRelease: &updateRelease,
		CancelRelease: &cancelRelease,
		GetRelease:    c.CreateGetReleaseQueryHandler(),

		CreateGate:         &createGate,
		UpdateGate:         &updateGate,
		DeleteGate:         &deleteGate,
		GetCurrentGate:     c.CreateGetCurrentGateQueryHandler(),
		GetUnitGateHistory: c.CreateGetUnitGateHistoryQueryHandler(),

		CreateEstimate:        &createEstimate,
		ReviseEstimate:        &reviseEstimate,
		ApproveEstimate:       &approveEstimate,
		CancelEstimate:        &cancelEstimate,
		GetEstimate:           c.CreateGetEstimateQueryHandler(),
		GetEstimateAllocation: c.CreateGetEstimateAllocationQueryHandler(),

		CreateWorkOrder:       &createWorkOrder,
		CompleteWorkOrderUnit: &completeUnit,
		RemoveWorkOrderUnit:   &removeUnit,
		GetWorkOrder:          c.CreateGetWorkOrderQueryHandler(),
	})
}

// CreateJobManager schedules the outbox relay publishing through publisher.
func (c *CompositionRoot) CreateJobManager(publisher *kafka.EventPublisher) *jobs.JobManager {
	relay := c.CreateRelayOutboxCommandHandler(publisher)
	return jobs.NewJobManager(&relay, c.cfg.OutboxBatchSize, c.logger)
}

// CreateGateConsumer records gate messages of external depots.
func (c *CompositionRoot) CreateGateConsumer() *kafkain.GateConsumer {
	recorder := c.CreateCreateGateCommandHandler()
	return kafkain.NewGateConsumer(kafkain.Config{
		Brokers:    c.cfg.KafkaBrokerList(),
		GroupID:    c.cfg.KafkaConsumerGroup,
		Topic:      c.cfg.KafkaGateTopic,
		MaxRetries: gateConsumerRetries,
		Clock:      c.clock,
	}, &recorder, c.logger)
}

type FuncPartyUoWFactory func() commands.PartyUoW

func (f FuncPartyUoWFactory) Create() commands.PartyUoW {
	return f()
}

type FuncRedeliveryUoWFactory func() commands.RedeliveryUoW

func (f FuncRedeliveryUoWFactory) Create() commands.RedeliveryUoW {
	return f()
}

type FuncReleaseUoWFactory func() commands.ReleaseUoW

func (f FuncReleaseUoWFactory) Create() commands.ReleaseUoW {
	return f()
}

type FuncGateUoWFactory func() commands.GateUoW

func (f FuncGateUoWFactory) Create() commands.GateUoW {
	return f()
}

type FuncEstimateUoWFactory func() commands.EstimateUoW

func (f FuncEstimateUoWFactory) Create() commands.EstimateUoW {
	return f()
}

type FuncWorkOrderUoWFactory func() commands.WorkOrderUoW

func (f FuncWorkOrderUoWFactory) Create() commands.WorkOrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
