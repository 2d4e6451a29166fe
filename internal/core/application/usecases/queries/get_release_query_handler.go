package queries

import (
	"context"

	"depot/internal/core/domain/model/release"

	"github.com/juju/clock"
)

type GetReleaseQueryHandler struct {
	reader ReleaseReader
	clock  clock.Clock
}

func NewGetReleaseQueryHandler(reader ReleaseReader, clk clock.Clock) GetReleaseQueryHandler {
	return GetReleaseQueryHandler{reader: reader, clock: clk}
}

func (h GetReleaseQueryHandler) Handle(ctx context.Context, query GetReleaseQuery) (GetReleaseQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetReleaseQueryResponse{}, err
	}

	r, err := h.reader.Get(ctx, query.Number())
	if err != nil {
		return GetReleaseQueryResponse{}, err
	}

	resp := GetReleaseQueryResponse{
		HeaderView: headerView(r.Header(), r.Status(h.clock.Now())),
		Type:       r.Type().String(),
		Owner:      refView(r.Owner()),
		Details:    make([]ReleaseDetailView, 0, len(r.Details())),
	}
	for _, d := range r.Details() {
		resp.Details = append(resp.Details, releaseDetailView(d))
	}
	return resp, nil
}

func releaseDetailView(d release.Detail) ReleaseDetailView {
	view := ReleaseDetailView{
		Customer:  refView(d.Customer()),
		Contract:  d.Contract(),
		Equipment: d.Equipment(),
		Quantity:  d.Quantity(),
		Units:     make([]ReleaseUnitView, 0, len(d.Units())),
	}
	for _, c := range d.Criteria() {
		view.Criteria = append(view.Criteria, CriterionView{Key: c.Key(), Value: c.Value()})
	}
	for _, u := range d.Units() {
		view.Units = append(view.Units, ReleaseUnitView{
			UnitNumber: u.UnitNumber().String(),
			Status:     u.Status().String(),
		})
	}
	return view
}
