package commands_test

import (
	"context"
	"time"

	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/gate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/core/domain/model/redelivery"
	"depot/internal/core/domain/model/release"
	"depot/internal/core/domain/model/workorder"
	"depot/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, events []kernel.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

func (m *MockOutboxRepository) ListPending(ctx context.Context, limit int) ([]kernel.DomainEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.DomainEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events []kernel.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type MockPartyRepository struct{ mock.Mock }

func (m *MockPartyRepository) Find(ctx context.Context, key party.Key) (*party.Party, error) {
	args := m.Called(ctx, key)
	p, _ := args.Get(0).(*party.Party)
	return p, args.Error(1)
}

// Save echoes the candidate unless the expectation returns a stored party.
func (m *MockPartyRepository) Save(ctx context.Context, p *party.Party) (*party.Party, error) {
	args := m.Called(ctx, p)
	if stored, ok := args.Get(0).(*party.Party); ok && stored != nil {
		return stored, args.Error(1)
	}
	return p, args.Error(1)
}

type MockRedeliveryRepository struct{ mock.Mock }

func (m *MockRedeliveryRepository) Exists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}
func (m *MockRedeliveryRepository) Get(ctx context.Context, number string) (*redelivery.Redelivery, error) {
	args := m.Called(ctx, number)
	r, _ := args.Get(0).(*redelivery.Redelivery)
	return r, args.Error(1)
}
func (m *MockRedeliveryRepository) Add(ctx context.Context, r *redelivery.Redelivery) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockRedeliveryRepository) Update(ctx context.Context, r *redelivery.Redelivery) error {
	return m.Called(ctx, r).Error(0)
}

type MockReleaseRepository struct{ mock.Mock }

func (m *MockReleaseRepository) Exists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}
func (m *MockReleaseRepository) Get(ctx context.Context, number string) (*release.Release, error) {
	args := m.Called(ctx, number)
	r, _ := args.Get(0).(*release.Release)
	return r, args.Error(1)
}
func (m *MockReleaseRepository) Add(ctx context.Context, r *release.Release) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockReleaseRepository) Update(ctx context.Context, r *release.Release) error {
	return m.Called(ctx, r).Error(0)
}

type MockGateRepository struct{ mock.Mock }

func (m *MockGateRepository) Add(ctx context.Context, r *gate.Record) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockGateRepository) Update(ctx context.Context, r *gate.Record) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockGateRepository) MarkDeleted(ctx context.Context, r *gate.Record) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockGateRepository) Find(ctx context.Context, key gate.Key) (*gate.Record, error) {
	args := m.Called(ctx, key)
	r, _ := args.Get(0).(*gate.Record)
	return r, args.Error(1)
}
func (m *MockGateRepository) ListByUnit(ctx context.Context, un kernel.UnitNumber) ([]*gate.Record, error) {
	args := m.Called(ctx, un)
	r, _ := args.Get(0).([]*gate.Record)
	return r, args.Error(1)
}

type MockEstimateRepository struct{ mock.Mock }

func (m *MockEstimateRepository) Exists(ctx context.Context, key estimate.Key) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
func (m *MockEstimateRepository) Get(ctx context.Context, key estimate.Key) (*estimate.Estimate, error) {
	args := m.Called(ctx, key)
	e, _ := args.Get(0).(*estimate.Estimate)
	return e, args.Error(1)
}
func (m *MockEstimateRepository) AddRevision(ctx context.Context, e *estimate.Estimate, r *estimate.Revision) error {
	return m.Called(ctx, e, r).Error(0)
}
func (m *MockEstimateRepository) ListRevisions(ctx context.Context, key estimate.Key) ([]*estimate.Revision, error) {
	args := m.Called(ctx, key)
	r, _ := args.Get(0).([]*estimate.Revision)
	return r, args.Error(1)
}
func (m *MockEstimateRepository) Cancel(ctx context.Context, e *estimate.Estimate) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEstimateRepository) GetCancel(ctx context.Context, key estimate.Key) (*estimate.CancelRequest, error) {
	args := m.Called(ctx, key)
	c, _ := args.Get(0).(*estimate.CancelRequest)
	return c, args.Error(1)
}

type MockWorkOrderRepository struct{ mock.Mock }

func (m *MockWorkOrderRepository) Exists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}
func (m *MockWorkOrderRepository) Get(ctx context.Context, number string) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, number)
	w, _ := args.Get(0).(*workorder.WorkOrder)
	return w, args.Error(1)
}
func (m *MockWorkOrderRepository) Add(ctx context.Context, w *workorder.WorkOrder) error {
	return m.Called(ctx, w).Error(0)
}
func (m *MockWorkOrderRepository) Update(ctx context.Context, w *workorder.WorkOrder) error {
	return m.Called(ctx, w).Error(0)
}

// MockUoW satisfies every unit of work interface of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) PartyRepository() ports.PartyRepository {
	return m.Called().Get(0).(ports.PartyRepository)
}
func (m *MockUoW) RedeliveryRepository() ports.RedeliveryRepository {
	return m.Called().Get(0).(ports.RedeliveryRepository)
}
func (m *MockUoW) ReleaseRepository() ports.ReleaseRepository {
	return m.Called().Get(0).(ports.ReleaseRepository)
}
func (m *MockUoW) GateRepository() ports.GateRepository {
	return m.Called().Get(0).(ports.GateRepository)
}
func (m *MockUoW) EstimateRepository() ports.EstimateRepository {
	return m.Called().Get(0).(ports.EstimateRepository)
}
func (m *MockUoW) WorkOrderRepository() ports.WorkOrderRepository {
	return m.Called().Get(0).(ports.WorkOrderRepository)
}
func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type MockPartyUoWFactory struct{ mock.Mock }

func (m *MockPartyUoWFactory) Create() commands.PartyUoW {
	return m.Called().Get(0).(commands.PartyUoW)
}

type MockRedeliveryUoWFactory struct{ mock.Mock }

func (m *MockRedeliveryUoWFactory) Create() commands.RedeliveryUoW {
	return m.Called().Get(0).(commands.RedeliveryUoW)
}

type MockReleaseUoWFactory struct{ mock.Mock }

func (m *MockReleaseUoWFactory) Create() commands.ReleaseUoW {
	return m.Called().Get(0).(commands.ReleaseUoW)
}

type MockGateUoWFactory struct{ mock.Mock }

func (m *MockGateUoWFactory) Create() commands.GateUoW {
	return m.Called().Get(0).(commands.GateUoW)
}

type MockEstimateUoWFactory struct{ mock.Mock }

func (m *MockEstimateUoWFactory) Create() commands.EstimateUoW {
	return m.Called().Get(0).(commands.EstimateUoW)
}

type MockWorkOrderUoWFactory struct{ mock.Mock }

func (m *MockWorkOrderUoWFactory) Create() commands.WorkOrderUoW {
	return m.Called().Get(0).(commands.WorkOrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	return m.Called().Get(0).(commands.OutboxUoW)
}
