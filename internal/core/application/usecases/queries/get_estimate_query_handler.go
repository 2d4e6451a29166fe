package queries

import (
	"context"

	"depot/internal/core/domain/model/estimate"
)

// presentationPlaces is the rounding applied to amounts leaving the service.
const presentationPlaces = 2

type GetEstimateQueryHandler struct {
	reader EstimateReader
}

func NewGetEstimateQueryHandler(reader EstimateReader) GetEstimateQueryHandler {
	return GetEstimateQueryHandler{reader: reader}
}

func (h GetEstimateQueryHandler) Handle(ctx context.Context, query GetEstimateQuery) (GetEstimateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEstimateQueryResponse{}, err
	}

	e, err := h.reader.Get(ctx, query.Key())
	if err != nil {
		return GetEstimateQueryResponse{}, err
	}

	resp := GetEstimateQueryResponse{
		EstimateNumber: e.Number(),
		Depot:          e.Depot().String(),
		UnitNumber:     e.UnitNumber().String(),
		Status:         e.Status().String(),
		Current:        revisionView(e.Current()),
	}
	for _, rev := range e.Revisions() {
		resp.Revisions = append(resp.Revisions, revisionView(rev))
	}
	if c := e.CancelRequest(); c != nil {
		resp.Cancel = &CancelView{Reason: c.Reason(), RequestedBy: c.RequestedBy(), RequestedAt: c.RequestedAt()}
	}
	return resp, nil
}

func revisionView(rev *estimate.Revision) RevisionView {
	content := rev.Content()
	view := RevisionView{
		Revision:     rev.Number(),
		Condition:    content.Condition().String(),
		Currency:     content.Currency().String(),
		ExchangeRate: content.ExchangeRate().Decimal().String(),
		Total:        content.Totals().Total.StringFixed(presentationPlaces),
		CreatedAt:    rev.CreatedAt(),
	}
	if a := rev.CustomerApproval(); a != nil {
		view.CustomerApproval = &ApprovalView{
			ApprovedBy: a.ApprovedBy(),
			ApprovedAt: a.ApprovedAt(),
			Reference:  a.Reference(),
		}
	}
	for _, item := range content.LineItems() {
		view.LineItems = append(view.LineItems, lineItemView(item))
	}
	return view
}

func lineItemView(item estimate.LineItem) LineItemView {
	codes := item.Codes()
	view := LineItemView{
		RepairCode:    codes.Repair,
		DamageCode:    codes.Damage,
		MaterialCode:  codes.Material,
		ComponentCode: codes.Component,
		LocationCode:  codes.Location,
		Description:   item.Description(),
		Hours:         item.Hours().String(),
		MaterialCost:  item.MaterialCost().String(),
		LaborRate:     item.LaborRate().String(),
		Party:         item.Party().String(),
		Quantity:      item.Quantity(),
		Cost:          item.Cost().StringFixed(presentationPlaces),
	}
	for _, p := range item.Parts() {
		view.Parts = append(view.Parts, PartView{
			PartNumber: p.Number(),
			Quantity:   p.Quantity(),
			Price:      p.Price().String(),
		})
	}
	return view
}
