package queries

import (
	"context"

	"depot/internal/core/domain/model/redelivery"

	"github.com/juju/clock"
)

type GetRedeliveryQueryHandler struct {
	reader RedeliveryReader
	clock  clock.Clock
}

func NewGetRedeliveryQueryHandler(reader RedeliveryReader, clk clock.Clock) GetRedeliveryQueryHandler {
	return GetRedeliveryQueryHandler{reader: reader, clock: clk}
}

func (h GetRedeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetRedeliveryQuery,
) (GetRedeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRedeliveryQueryResponse{}, err
	}

	r, err := h.reader.Get(ctx, query.Number())
	if err != nil {
		return GetRedeliveryQueryResponse{}, err
	}

	resp := GetRedeliveryQueryResponse{
		HeaderView: headerView(r.Header(), r.Status(h.clock.Now())),
		Details:    make([]RedeliveryDetailView, 0, len(r.Details())),
	}
	for _, d := range r.Details() {
		resp.Details = append(resp.Details, redeliveryDetailView(d))
	}
	return resp, nil
}

func redeliveryDetailView(d redelivery.Detail) RedeliveryDetailView {
	view := RedeliveryDetailView{
		Customer:           refView(d.Customer()),
		Contract:           d.Contract(),
		Equipment:          d.Equipment(),
		InsuranceCoverage:  refView(d.InsuranceCoverage()),
		InspectionCriteria: d.InspectionCriteria(),
		BillingParty:       refView(d.BillingParty()),
		Quantity:           d.Quantity(),
		Units:              make([]RedeliveryUnitView, 0, len(d.Units())),
	}
	for _, u := range d.Units() {
		view.Units = append(view.Units, RedeliveryUnitView{
			UnitNumber:         u.UnitNumber().String(),
			ManufactureDate:    u.ManufactureDate(),
			LastOnHireDate:     u.LastOnHireDate(),
			LastOnHireLocation: u.LastOnHireLocation(),
			Status:             u.Status().String(),
			BillingParty:       refView(u.BillingParty()),
		})
	}
	return view
}
