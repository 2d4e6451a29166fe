package queries

import (
	"time"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/party"
)

type RefView struct {
	CompanyID string `json:"companyId,omitempty"`
	Code      string `json:"code,omitempty"`
}

func refView(r party.Ref) *RefView {
	if r.IsZero() {
		return nil
	}
	return &RefView{CompanyID: r.CompanyID(), Code: r.Code()}
}

// HeaderView holds the fields redeliveries and releases share.
type HeaderView struct {
	Number         string     `json:"number"`
	Depot          *RefView   `json:"depot,omitempty"`
	Recipient      *RefView   `json:"recipient,omitempty"`
	ApprovalDate   time.Time  `json:"approvalDate"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	Remarks        string     `json:"remarks,omitempty"`
	Status         string     `json:"status"`
}

func headerView(h advice.Header, status advice.Status) HeaderView {
	return HeaderView{
		Number:         h.Number(),
		Depot:          refView(h.Depot()),
		Recipient:      refView(h.Recipient()),
		ApprovalDate:   h.ApprovalDate(),
		ExpirationDate: h.ExpirationDate(),
		Remarks:        h.Remarks(),
		Status:         status.String(),
	}
}
