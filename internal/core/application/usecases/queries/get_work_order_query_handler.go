package queries

import (
	"context"
)

type GetWorkOrderQueryHandler struct {
	reader WorkOrderReader
}

func NewGetWorkOrderQueryHandler(reader WorkOrderReader) GetWorkOrderQueryHandler {
	return GetWorkOrderQueryHandler{reader: reader}
}

func (h GetWorkOrderQueryHandler) Handle(ctx context.Context, query GetWorkOrderQuery) (GetWorkOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkOrderQueryResponse{}, err
	}

	w, err := h.reader.Get(ctx, query.Number())
	if err != nil {
		return GetWorkOrderQueryResponse{}, err
	}

	resp := GetWorkOrderQueryResponse{
		WorkOrderNumber: w.Number(),
		Depot:           refView(w.Depot()),
		Owner:           refView(w.Owner()),
		TargetCriteria:  w.TargetCriteria(),
		Remarks:         w.Remarks(),
		Status:          w.Status().String(),
		Units:           make([]WorkOrderUnitView, 0, len(w.Units())),
	}
	if ref := w.Estimate(); ref != nil {
		resp.Estimate = &EstimateRefView{EstimateNumber: ref.Number, Revision: ref.Revision}
	}
	for _, u := range w.Units() {
		resp.Units = append(resp.Units, WorkOrderUnitView{
			UnitNumber: u.UnitNumber().String(),
			Status:     u.Status().String(),
			RepairedAt: u.RepairedAt(),
		})
	}
	return resp, nil
}
