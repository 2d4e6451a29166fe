package commands_test

import (
	"testing"
	"time"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/core/domain/model/workorder"
	"depot/internal/pkg/errs"

	"github.com/im7mortal/kmutex"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func workOrderPayload() requests.WorkOrder {
	return requests.WorkOrder{
		WorkOrderNumber:  "WO-2026-001",
		Depot:            requests.Party{CompanyID: "DEHAMDEP1"},
		Owner:            requests.ExternalParty{CompanyID: "OWNERCO01"},
		TargetCriteria:   "IICL",
		EstimateNumber:   "EST-0001",
		EstimateRevision: 2,
		Units: []requests.WorkOrderUnit{
			{UnitNumber: "TRLU1234567"},
			{UnitNumber: "MSKU7654321"},
		},
	}
}

func storedWorkOrder(t *testing.T) *workorder.WorkOrder {
	t.Helper()
	units := make([]workorder.Unit, 0, 2)
	for _, v := range []string{"TRLU1234567", "MSKU7654321"} {
		un, err := kernel.NewUnitNumber(v)
		require.NoError(t, err)
		u, err := workorder.NewUnit(un)
		require.NoError(t, err)
		units = append(units, u)
	}
	w, err := workorder.RestoreWorkOrder("WO-2026-001", party.RestoreRef("DEHAMDEP1", ""),
		party.RestoreRef("OWNERCO01", ""), "IICL", nil, "", units)
	require.NoError(t, err)
	return w
}

func approvedEstimate(t *testing.T) *estimate.Estimate {
	t.Helper()
	e := storedEstimate(t)
	approval, err := estimate.NewApproval("jdoe", now.Add(-time.Minute), "")
	require.NoError(t, err)
	_, err = e.Approve(approval, now.Add(-time.Minute))
	require.NoError(t, err)
	return e
}

type workOrderFixture struct {
	partyRepo  *MockPartyRepository
	estimates  *MockEstimateRepository
	repo       *MockWorkOrderRepository
	uow        *MockUoW
	uowFactory *MockWorkOrderUoWFactory
}

func newWorkOrderFixture() workOrderFixture {
	f := workOrderFixture{
		partyRepo:  &MockPartyRepository{},
		estimates:  &MockEstimateRepository{},
		repo:       &MockWorkOrderRepository{},
		uow:        &MockUoW{},
		uowFactory: &MockWorkOrderUoWFactory{},
	}
	f.uowFactory.On("Create").Return(f.uow)
	f.uow.On("PartyRepository").Return(f.partyRepo).Maybe()
	f.uow.On("EstimateRepository").Return(f.estimates).Maybe()
	f.uow.On("WorkOrderRepository").Return(f.repo)
	f.partyRepo.On("Save", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	return f
}

func TestCreateWorkOrderCommandHandler(t *testing.T) {
	ctx := t.Context()

	t.Run("should store a new work order", func(t *testing.T) {
		f := newWorkOrderFixture()
		cmd, err := commands.NewCreateWorkOrderCommand(internal, workOrderPayload())
		require.NoError(t, err)

		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil),
			f.repo.On("Exists", ctx, "WO-2026-001").Return(false, nil),
			f.estimates.On("Get", ctx, estimateKey).Return(approvedEstimate(t), nil),
			f.repo.On("Add", ctx, mock.MatchedBy(func(w *workorder.WorkOrder) bool {
				return len(w.Units()) == 2 && w.Estimate() != nil && w.Estimate().Revision == 2
			})).Return(nil),
			f.uow.On("Commit", ctx).Return(nil),
			f.uow.On("Rollback", ctx).Return(nil),
		)

		handler := commands.NewCreateWorkOrderCommandHandler(f.uowFactory, kmutex.New(), testclock.NewClock(now))
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		f.repo.AssertExpectations(t)
		f.uow.AssertExpectations(t)
		f.partyRepo.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("should reject a known number from an internal caller", func(t *testing.T) {
		f := newWorkOrderFixture()
		cmd, err := commands.NewCreateWorkOrderCommand(internal, workOrderPayload())
		require.NoError(t, err)

		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil),
			f.repo.On("Exists", ctx, "WO-2026-001").Return(true, nil),
			f.uow.On("Rollback", ctx).Return(nil),
		)

		handler := commands.NewCreateWorkOrderCommandHandler(f.uowFactory, kmutex.New(), testclock.NewClock(now))
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should replace a known number for an external caller", func(t *testing.T) {
		f := newWorkOrderFixture()
		payload := workOrderPayload()
		payload.Units = payload.Units[:1]
		cmd, err := commands.NewCreateWorkOrderCommand(external, payload)
		require.NoError(t, err)

		stored := storedWorkOrder(t)
		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil),
			f.repo.On("Exists", ctx, "WO-2026-001").Return(true, nil),
			f.estimates.On("Get", ctx, estimateKey).Return(approvedEstimate(t), nil),
			f.repo.On("Get", ctx, "WO-2026-001").Return(stored, nil),
			f.repo.On("Update", ctx, stored).Return(nil),
			f.uow.On("Commit", ctx).Return(nil),
			f.uow.On("Rollback", ctx).Return(nil),
		)

		handler := commands.NewCreateWorkOrderCommandHandler(f.uowFactory, kmutex.New(), testclock.NewClock(now))
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Len(t, stored.Units(), 1)
		require.Len(t, stored.DomainEvents(), 1)
		assert.Equal(t, workorder.EventUpdated, stored.DomainEvents()[0].Name())
	})
}

func TestCreateWorkOrderCommandHandler_Estimate(t *testing.T) {
	ctx := t.Context()

	cancelledEstimate := func(t *testing.T) *estimate.Estimate {
		e := approvedEstimate(t)
		req, err := estimate.NewCancelRequest("duplicate", "jdoe", now)
		require.NoError(t, err)
		require.NoError(t, e.Cancel(req))
		return e
	}

	tests := []struct {
		name     string
		payload  func() requests.WorkOrder
		stored   func(t *testing.T) *estimate.Estimate
		notFound error
		wantErr  error
	}{
		{
			name:     "missing estimate",
			payload:  workOrderPayload,
			notFound: errs.NewObjectNotFoundError("estimate", estimateKey),
			wantErr:  errs.ErrObjectNotFound,
		},
		{
			name: "missing revision",
			payload: func() requests.WorkOrder {
				p := workOrderPayload()
				p.EstimateRevision = 7
				return p
			},
			stored:  approvedEstimate,
			wantErr: errs.ErrObjectNotFound,
		},
		{
			name: "unapproved revision",
			payload: func() requests.WorkOrder {
				p := workOrderPayload()
				p.EstimateRevision = 1
				return p
			},
			stored:  approvedEstimate,
			wantErr: errs.ErrConflict,
		},
		{
			name:    "cancelled estimate",
			payload: workOrderPayload,
			stored:  cancelledEstimate,
			wantErr: errs.ErrConflict,
		},
		{
			name: "estimate for a unit the order does not repair",
			payload: func() requests.WorkOrder {
				p := workOrderPayload()
				p.Units = p.Units[1:]
				return p
			},
			stored:  approvedEstimate,
			wantErr: errs.ErrInvariantViolated,
		},
	}

	for _, tt := range tests {
		t.Run("should reject a "+tt.name, func(t *testing.T) {
			f := newWorkOrderFixture()
			cmd, err := commands.NewCreateWorkOrderCommand(internal, tt.payload())
			require.NoError(t, err)

			f.uow.On("Begin", ctx).Return(nil)
			f.uow.On("Rollback", ctx).Return(nil)
			f.repo.On("Exists", ctx, "WO-2026-001").Return(false, nil)
			if tt.notFound != nil {
				f.estimates.On("Get", ctx, estimateKey).Return(nil, tt.notFound)
			} else {
				f.estimates.On("Get", ctx, estimateKey).Return(tt.stored(t), nil)
			}

			handler := commands.NewCreateWorkOrderCommandHandler(f.uowFactory, kmutex.New(), testclock.NewClock(now))
			err = handler.Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			f.repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestCompleteWorkOrderUnitCommandHandler(t *testing.T) {
	ctx := t.Context()

	t.Run("should complete the order once every unit is repaired", func(t *testing.T) {
		f := newWorkOrderFixture()
		stored := storedWorkOrder(t)
		f.uow.On("Begin", ctx).Return(nil)
		f.repo.On("Get", ctx, "WO-2026-001").Return(stored, nil)
		f.repo.On("Update", ctx, stored).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.uow.On("Rollback", ctx).Return(nil)

		complete := commands.NewCompleteWorkOrderUnitCommandHandler(f.uowFactory, kmutex.New(), testclock.NewClock(now))
		remove := commands.NewRemoveWorkOrderUnitCommandHandler(f.uowFactory, kmutex.New(), testclock.NewClock(now))

		repair, err := commands.NewWorkOrderUnitCommand(internal, "WO-2026-001", "TRLU1234567")
		require.NoError(t, err)
		require.NoError(t, complete.Handle(ctx, repair))
		assert.Equal(t, workorder.StatusOpen, stored.Status())

		drop, err := commands.NewWorkOrderUnitCommand(internal, "WO-2026-001", "MSKU7654321")
		require.NoError(t, err)
		require.NoError(t, remove.Handle(ctx, drop))
		assert.Equal(t, workorder.StatusCompleted, stored.Status())

		units := stored.Units()
		assert.Equal(t, workorder.UnitRepaired, units[0].Status())
		require.NotNil(t, units[0].RepairedAt())
		assert.Equal(t, now, *units[0].RepairedAt())
		assert.Equal(t, workorder.UnitRemoved, units[1].Status())
	})

	t.Run("should reject a unit that is not on the order", func(t *testing.T) {
		f := newWorkOrderFixture()
		f.uow.On("Begin", ctx).Return(nil)
		f.repo.On("Get", ctx, "WO-2026-001").Return(storedWorkOrder(t), nil)
		f.uow.On("Rollback", ctx).Return(nil)

		cmd, err := commands.NewWorkOrderUnitCommand(internal, "WO-2026-001", "CSQU3054383")
		require.NoError(t, err)

		handler := commands.NewCompleteWorkOrderUnitCommandHandler(f.uowFactory, kmutex.New(), testclock.NewClock(now))
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
