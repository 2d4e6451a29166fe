package queries_test

import (
	"context"
	"testing"
	"time"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/usecases/queries"
	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/core/domain/model/redelivery"
	"depot/internal/core/domain/model/release"
	"depot/internal/core/domain/model/workorder"
	"depot/internal/pkg/errs"

	"github.com/juju/clock/testclock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	approvalDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	depotRef     = party.RestoreRef("DEHAMDEP1", "")
)

type MockRedeliveryReader struct{ mock.Mock }

func (m *MockRedeliveryReader) Get(ctx context.Context, number string) (*redelivery.Redelivery, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redelivery.Redelivery), args.Error(1)
}

type MockReleaseReader struct{ mock.Mock }

func (m *MockReleaseReader) Get(ctx context.Context, number string) (*release.Release, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*release.Release), args.Error(1)
}

type MockEstimateReader struct{ mock.Mock }

func (m *MockEstimateReader) Get(ctx context.Context, key estimate.Key) (*estimate.Estimate, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimate.Estimate), args.Error(1)
}

type MockWorkOrderReader struct{ mock.Mock }

func (m *MockWorkOrderReader) Get(ctx context.Context, number string) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}

func unitNumber(t *testing.T, v string) kernel.UnitNumber {
	t.Helper()
	un, err := kernel.NewUnitNumber(v)
	require.NoError(t, err)
	return un
}

func newRedelivery(t *testing.T, expiration *time.Time) *redelivery.Redelivery {
	t.Helper()
	billing := party.RestoreRef("", "BILL01")
	header, err := advice.NewHeader("redeliveryNumber", "AHAMG33141",
		depotRef, party.RestoreRef("", "MSK"), approvalDate, expiration, "")
	require.NoError(t, err)
	unit, err := redelivery.NewUnit(unitNumber(t, "TRLU1234567"), approvalDate.AddDate(-5, 0, 0), nil, "", billing)
	require.NoError(t, err)
	detail, err := redelivery.NewDetail(party.RestoreRef("CUSTOMER1", ""), "C-100", "22G1",
		party.Ref{}, "IICL", billing, 1, []redelivery.Unit{unit})
	require.NoError(t, err)
	r, err := redelivery.NewRedelivery(header, []redelivery.Detail{detail}, approvalDate)
	require.NoError(t, err)
	return r
}

func TestGetRedeliveryQueryHandler(t *testing.T) {
	ctx := context.Background()
	expiration := approvalDate.AddDate(0, 1, 0)

	testCases := []struct {
		name     string
		now      time.Time
		expected string
	}{
		{"before approval date", approvalDate.Add(-time.Hour), advice.Pending.String()},
		{"after approval date", approvalDate.Add(time.Hour), advice.Approved.String()},
		{"after expiration date", expiration.Add(time.Hour), advice.Expired.String()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := new(MockRedeliveryReader)
			reader.On("Get", ctx, "AHAMG33141").Return(newRedelivery(t, &expiration), nil)
			query, err := queries.NewGetRedeliveryQuery("AHAMG33141")
			require.NoError(t, err)

			resp, err := queries.NewGetRedeliveryQueryHandler(reader, testclock.NewClock(tc.now)).Handle(ctx, query)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, resp.Status)
			assert.Equal(t, "AHAMG33141", resp.Number)
			assert.Equal(t, "DEHAMDEP1", resp.Depot.CompanyID)
			assert.Equal(t, "MSK", resp.Recipient.Code)
			require.Len(t, resp.Details, 1)
			assert.Nil(t, resp.Details[0].InsuranceCoverage)
			require.Len(t, resp.Details[0].Units, 1)
			assert.Equal(t, "TRLU1234567", resp.Details[0].Units[0].UnitNumber)
			assert.Equal(t, redelivery.UnitTied.String(), resp.Details[0].Units[0].Status)
			reader.AssertExpectations(t)
		})
	}

	t.Run("cancelled wins over dates", func(t *testing.T) {
		r := newRedelivery(t, nil)
		require.NoError(t, r.Cancel(approvalDate.Add(time.Hour)))
		reader := new(MockRedeliveryReader)
		reader.On("Get", ctx, "AHAMG33141").Return(r, nil)
		query, err := queries.NewGetRedeliveryQuery("AHAMG33141")
		require.NoError(t, err)

		resp, err := queries.NewGetRedeliveryQueryHandler(reader, testclock.NewClock(approvalDate)).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, advice.Cancelled.String(), resp.Status)
	})

	t.Run("not found is passed through", func(t *testing.T) {
		reader := new(MockRedeliveryReader)
		reader.On("Get", ctx, "AHAMG00000").Return(nil, errs.NewObjectNotFoundError("redelivery", "AHAMG00000"))
		query, err := queries.NewGetRedeliveryQuery("AHAMG00000")
		require.NoError(t, err)

		_, err = queries.NewGetRedeliveryQueryHandler(reader, testclock.NewClock(approvalDate)).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestGetReleaseQueryHandler(t *testing.T) {
	ctx := context.Background()
	header, err := advice.NewHeader("releaseNumber", "REL0001",
		depotRef, party.RestoreRef("", "HAPAG"), approvalDate, nil, "")
	require.NoError(t, err)
	grade, err := release.NewCriterion("grade", "CW")
	require.NoError(t, err)
	lotted, err := release.RestoreUnit(unitNumber(t, "TRLU1234567"), release.UnitLotted)
	require.NoError(t, err)
	detail, err := release.NewDetail(party.RestoreRef("CUSTOMER1", ""), "CTR", "45G1", 1,
		[]release.Criterion{grade}, []release.Unit{lotted})
	require.NoError(t, err)
	r, err := release.NewRelease(header, release.TypeSale, party.RestoreRef("OWNER0001", ""),
		[]release.Detail{detail}, approvalDate)
	require.NoError(t, err)

	reader := new(MockReleaseReader)
	reader.On("Get", ctx, "REL0001").Return(r, nil)
	query, err := queries.NewGetReleaseQuery("REL0001")
	require.NoError(t, err)

	resp, err := queries.NewGetReleaseQueryHandler(reader, testclock.NewClock(approvalDate.Add(time.Hour))).
		Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, advice.Complete.String(), resp.Status, "Every active unit is lotted")
	assert.Equal(t, release.TypeSale.String(), resp.Type)
	assert.Equal(t, "OWNER0001", resp.Owner.CompanyID)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, []queries.CriterionView{{Key: "grade", Value: "CW"}}, resp.Details[0].Criteria)
	assert.Equal(t, release.UnitLotted.String(), resp.Details[0].Units[0].Status)
}

func newEstimate(t *testing.T) *estimate.Estimate {
	t.Helper()
	codes := estimate.Codes{Repair: "RP", Damage: "DT", Component: "PAA"}
	owner, err := estimate.NewLineItem(codes, "patch", kernel.MustAmount("2"), kernel.MustAmount("50"),
		kernel.MustAmount("50"), estimate.PartyOwner, 0, nil)
	require.NoError(t, err)
	customer, err := estimate.NewLineItem(codes, "", kernel.ZeroAmount(), kernel.MustAmount("20"),
		kernel.ZeroAmount(), estimate.PartyCustomer, 0, nil)
	require.NoError(t, err)
	eur, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)
	content, err := estimate.NewContent(estimate.ConditionD, eur, kernel.MustAmount("1"),
		[]estimate.LineItem{owner, customer}, nil)
	require.NoError(t, err)

	e, err := estimate.NewEstimate("EST0001", depotRef, unitNumber(t, "TRLU1234567"), content,
		estimate.PermissivePolicy{}, approvalDate)
	require.NoError(t, err)
	return e
}

func TestGetEstimateQueryHandler(t *testing.T) {
	ctx := context.Background()
	e := newEstimate(t)
	approval, err := estimate.NewApproval("J. Smith", approvalDate.Add(time.Hour), "PO-1")
	require.NoError(t, err)
	_, err = e.Approve(approval, approvalDate.Add(time.Hour))
	require.NoError(t, err)

	reader := new(MockEstimateReader)
	key := estimate.Key{Number: "EST0001", Depot: "DEHAMDEP1"}
	reader.On("Get", ctx, key).Return(e, nil)
	query, err := queries.NewGetEstimateQuery("EST0001", "DEHAMDEP1")
	require.NoError(t, err)

	resp, err := queries.NewGetEstimateQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, estimate.StatusApproved.String(), resp.Status)
	assert.Equal(t, 2, resp.Current.Revision)
	assert.Equal(t, "170.00", resp.Current.Total)
	require.NotNil(t, resp.Current.CustomerApproval)
	assert.Equal(t, "J. Smith", resp.Current.CustomerApproval.ApprovedBy)
	require.Len(t, resp.Revisions, 2)
	assert.Nil(t, resp.Revisions[0].CustomerApproval)
	require.Len(t, resp.Current.LineItems, 2)
	assert.Equal(t, "150.00", resp.Current.LineItems[0].Cost)
	assert.Equal(t, 1, resp.Current.LineItems[1].Quantity, "Quantity defaults to one")
	assert.Nil(t, resp.Cancel)
}

func TestGetEstimateAllocationQueryHandler(t *testing.T) {
	ctx := context.Background()
	reader := new(MockEstimateReader)
	reader.On("Get", ctx, estimate.Key{Number: "EST0001", Depot: "DEHAMDEP1"}).Return(newEstimate(t), nil)

	query, err := queries.NewGetEstimateAllocationQuery("EST0001", requests.EstimateAllocation{
		Depot: "DEHAMDEP1",
		CTL:   true,
		PreliminaryDecision: &requests.PreliminaryDecision{
			Recommendation: "SELL",
			Reason:         "repair exceeds value",
			Difference:     decimal.RequireFromString("30.5"),
		},
	})
	require.NoError(t, err)

	resp, err := queries.NewGetEstimateAllocationQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Revision)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Equal(t, "150.00", resp.OwnerTotal)
	assert.Equal(t, "20.00", resp.CustomerTotal)
	assert.Equal(t, "0.00", resp.InsuranceTotal)
	assert.Equal(t, "170.00", resp.Total)
	assert.True(t, resp.CTL)
	require.NotNil(t, resp.PreliminaryDecision)
	assert.Equal(t, "SELL", resp.PreliminaryDecision.Recommendation)
	assert.Equal(t, "30.50", resp.PreliminaryDecision.Difference)
}

func TestGetWorkOrderQueryHandler(t *testing.T) {
	ctx := context.Background()
	u1, err := workorder.NewUnit(unitNumber(t, "TRLU1234567"))
	require.NoError(t, err)
	u2, err := workorder.NewUnit(unitNumber(t, "TRLU7654321"))
	require.NoError(t, err)
	w, err := workorder.NewWorkOrder("WO0001", depotRef, party.RestoreRef("OWNER0001", ""), "IICL",
		&workorder.EstimateRef{Number: "EST0001", Revision: 2}, "", []workorder.Unit{u1, u2}, approvalDate)
	require.NoError(t, err)
	repairedAt := approvalDate.Add(24 * time.Hour)
	require.NoError(t, w.CompleteUnit(unitNumber(t, "TRLU1234567"), repairedAt))

	reader := new(MockWorkOrderReader)
	reader.On("Get", ctx, "WO0001").Return(w, nil)
	query, err := queries.NewGetWorkOrderQuery("WO0001")
	require.NoError(t, err)

	resp, err := queries.NewGetWorkOrderQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, workorder.StatusOpen.String(), resp.Status)
	assert.Equal(t, &queries.EstimateRefView{EstimateNumber: "EST0001", Revision: 2}, resp.Estimate)
	require.Len(t, resp.Units, 2)
	assert.Equal(t, workorder.UnitRepaired.String(), resp.Units[0].Status)
	require.NotNil(t, resp.Units[0].RepairedAt)
	assert.True(t, resp.Units[0].RepairedAt.Equal(repairedAt))
	assert.Nil(t, resp.Units[1].RepairedAt)
}
