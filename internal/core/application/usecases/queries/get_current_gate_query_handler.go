package queries

import (
	"context"

	"depot/internal/core/domain/model/gate"
	"depot/internal/pkg/errs"
)

type GetCurrentGateQueryHandler struct {
	gates GateReader
}

func NewGetCurrentGateQueryHandler(gates GateReader) GetCurrentGateQueryHandler {
	return GetCurrentGateQueryHandler{gates: gates}
}

// Handle returns the live record gate.Current picks from the unit history.
func (h GetCurrentGateQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentGateQuery,
) (GetCurrentGateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCurrentGateQueryResponse{}, err
	}

	records, err := h.gates.ListByUnit(ctx, query.UnitNumber())
	if err != nil {
		return GetCurrentGateQueryResponse{}, err
	}
	current := gate.Current(records)
	if current == nil {
		return GetCurrentGateQueryResponse{}, errs.NewObjectNotFoundError("gate", query.UnitNumber().String())
	}
	return GetCurrentGateQueryResponse{Gate: gateRecordView(current)}, nil
}

func gateRecordView(r *gate.Record) GateRecordView {
	return GateRecordView{
		Seq:          r.Seq(),
		UnitNumber:   r.UnitNumber().String(),
		AdviceNumber: r.AdviceNumber(),
		Depot:        r.Depot().String(),
		Type:         r.Direction().String(),
		Status:       r.Condition().String(),
		ActivityTime: r.ActivityTime().UTC(),
		Remarks:      r.Remarks(),
		Deleted:      r.IsDeleted(),
	}
}
