package queries

import (
	"context"
)

type GetEstimateAllocationQueryHandler struct {
	reader EstimateReader
}

func NewGetEstimateAllocationQueryHandler(reader EstimateReader) GetEstimateAllocationQueryHandler {
	return GetEstimateAllocationQueryHandler{reader: reader}
}

func (h GetEstimateAllocationQueryHandler) Handle(
	ctx context.Context,
	query GetEstimateAllocationQuery,
) (GetEstimateAllocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEstimateAllocationQueryResponse{}, err
	}

	e, err := h.reader.Get(ctx, query.Key())
	if err != nil {
		return GetEstimateAllocationQueryResponse{}, err
	}

	allocation := e.Allocation(query.CTL(), query.PreliminaryDecision())
	resp := GetEstimateAllocationQueryResponse{
		EstimateNumber: e.Number(),
		Depot:          e.Depot().String(),
		Revision:       e.Current().Number(),
		Currency:       e.Current().Content().Currency().String(),
		OwnerTotal:     allocation.Owner.StringFixed(presentationPlaces),
		CustomerTotal:  allocation.Customer.StringFixed(presentationPlaces),
		InsuranceTotal: allocation.Insurance.StringFixed(presentationPlaces),
		Total:          allocation.Total.StringFixed(presentationPlaces),
		CTL:            allocation.CTL,
	}
	if d := allocation.PreliminaryDecision; d != nil {
		resp.PreliminaryDecision = &PreliminaryDecisionView{
			Recommendation: d.Recommendation(),
			Reason:         d.Reason(),
			Difference:     d.Difference().Decimal().StringFixed(presentationPlaces),
		}
	}
	return resp, nil
}
