// Package estimaterepo persists estimates as an append-only list of revisions.
package estimaterepo

import (
	"time"

	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// EstimateDTO is the estimates row: identity and cancel request. Depot holds
// the depot key the estimate is addressed by.
type EstimateDTO struct {
	Number            string        `gorm:"primaryKey;size:20"`
	Depot             string        `gorm:"primaryKey;size:20"`
	DepotParty        shared.RefDTO `gorm:"embedded;embeddedPrefix:depot_party_"`
	UnitNumber        string        `gorm:"size:11;index"`
	CancelReason      *string       `gorm:"size:255"`
	CancelRequestedBy *string       `gorm:"size:100"`
	CancelRequestedAt *time.Time
}

func (EstimateDTO) TableName() string {
	return "estimates"
}

// RevisionDTO is one immutable estimate_revisions row. Totals are stored for
// reporting and recomputed from line items on load.
type RevisionDTO struct {
	EstimateNumber    string          `gorm:"primaryKey;size:20"`
	Depot             string          `gorm:"primaryKey;size:20"`
	Revision          int             `gorm:"primaryKey;autoIncrement:false"`
	Condition         string          `gorm:"size:1"`
	Currency          string          `gorm:"size:3"`
	ExchangeRate      decimal.Decimal `gorm:"type:numeric"`
	OwnerTotal        decimal.Decimal `gorm:"type:numeric"`
	CustomerTotal     decimal.Decimal `gorm:"type:numeric"`
	InsuranceTotal    decimal.Decimal `gorm:"type:numeric"`
	Total             decimal.Decimal `gorm:"type:numeric"`
	LineItems         []LineItemDTO   `gorm:"serializer:json"`
	ApprovedBy        *string         `gorm:"size:100"`
	ApprovedAt        *time.Time
	ApprovalReference *string `gorm:"size:20"`
	CreatedAt         time.Time
}

func (RevisionDTO) TableName() string {
	return "estimate_revisions"
}

type LineItemDTO struct {
	RepairCode    string          `json:"repairCode"`
	DamageCode    string          `json:"damageCode,omitempty"`
	MaterialCode  string          `json:"materialCode,omitempty"`
	ComponentCode string          `json:"componentCode"`
	LocationCode  string          `json:"locationCode,omitempty"`
	Description   string          `json:"description,omitempty"`
	Hours         decimal.Decimal `json:"hours"`
	MaterialCost  decimal.Decimal `json:"materialCost"`
	LaborRate     decimal.Decimal `json:"laborRate"`
	Party         string          `json:"party"`
	Quantity      int             `json:"quantity"`
	Parts         []PartDTO       `json:"parts,omitempty"`
}

type PartDTO struct {
	Number   string          `json:"number"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func estimateFromDomain(e *estimate.Estimate) EstimateDTO {
	dto := EstimateDTO{
		Number:     e.Number(),
		Depot:      e.Key().Depot,
		DepotParty: shared.FromRef(e.Depot()),
		UnitNumber: e.UnitNumber().String(),
	}
	if c := e.CancelRequest(); c != nil {
		reason, by, at := c.Reason(), c.RequestedBy(), c.RequestedAt()
		dto.CancelReason, dto.CancelRequestedBy, dto.CancelRequestedAt = &reason, &by, &at
	}
	return dto
}

func revisionFromDomain(key estimate.Key, r *estimate.Revision) RevisionDTO {
	content := r.Content()
	totals := content.Totals()
	dto := RevisionDTO{
		EstimateNumber: key.Number,
		Depot:          key.Depot,
		Revision:       r.Number(),
		Condition:      content.Condition().String(),
		Currency:       content.Currency().String(),
		ExchangeRate:   content.ExchangeRate().Decimal(),
		OwnerTotal:     totals.Owner,
		CustomerTotal:  totals.Customer,
		InsuranceTotal: totals.Insurance,
		Total:          totals.Total,
		CreatedAt:      r.CreatedAt(),
	}

	for _, item := range content.LineItems() {
		codes := item.Codes()
		line := LineItemDTO{
			RepairCode:    codes.Repair,
			DamageCode:    codes.Damage,
			MaterialCode:  codes.Material,
			ComponentCode: codes.Component,
			LocationCode:  codes.Location,
			Description:   item.Description(),
			Hours:         item.Hours().Decimal(),
			MaterialCost:  item.MaterialCost().Decimal(),
			LaborRate:     item.LaborRate().Decimal(),
			Party:         item.Party().String(),
			Quantity:      item.Quantity(),
		}
		for _, p := range item.Parts() {
			line.Parts = append(line.Parts, PartDTO{Number: p.Number(), Quantity: p.Quantity(), Price: p.Price().Decimal()})
		}
		dto.LineItems = append(dto.LineItems, line)
	}

	if a := r.CustomerApproval(); a != nil {
		by, at, ref := a.ApprovedBy(), a.ApprovedAt(), a.Reference()
		dto.ApprovedBy, dto.ApprovedAt, dto.ApprovalReference = &by, &at, &ref
	}
	return dto
}

func cancelToDomain(dto EstimateDTO) (*estimate.CancelRequest, error) {
	if dto.CancelRequestedAt == nil {
		return nil, nil
	}
	c, err := estimate.NewCancelRequest(deref(dto.CancelReason), deref(dto.CancelRequestedBy), *dto.CancelRequestedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func revisionToDomain(dto RevisionDTO) (*estimate.Revision, error) {
	condition, err := estimate.ParseCondition(dto.Condition)
	if err != nil {
		return nil, err
	}
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}
	rate, err := kernel.NewAmount("exchangeRate", dto.ExchangeRate)
	if err != nil {
		return nil, err
	}

	items := make([]estimate.LineItem, 0, len(dto.LineItems))
	for _, line := range dto.LineItems {
		item, itemErr := lineItemToDomain(line)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total := dto.Total
	content, err := estimate.NewContent(condition, currency, rate, items, &total)
	if err != nil {
		return nil, err
	}

	var approval *estimate.Approval
	if dto.ApprovedAt != nil {
		a, approvalErr := estimate.NewApproval(deref(dto.ApprovedBy), *dto.ApprovedAt, deref(dto.ApprovalReference))
		if approvalErr != nil {
			return nil, approvalErr
		}
		approval = &a
	}

	return estimate.RestoreRevision(dto.Revision, content, approval, dto.CreatedAt)
}

func lineItemToDomain(dto LineItemDTO) (estimate.LineItem, error) {
	responsible, err := estimate.ParseResponsibleParty(dto.Party)
	if err != nil {
		return estimate.LineItem{}, err
	}
	hours, errHours := kernel.NewAmount("hours", dto.Hours)
	material, errMaterial := kernel.NewAmount("materialCost", dto.MaterialCost)
	rate, errRate := kernel.NewAmount("laborRate", dto.LaborRate)
	for _, e := range []error{errHours, errMaterial, errRate} {
		if e != nil {
			return estimate.LineItem{}, e
		}
	}

	parts := make([]estimate.Part, 0, len(dto.Parts))
	for _, p := range dto.Parts {
		price, priceErr := kernel.NewAmount("price", p.Price)
		if priceErr != nil {
			return estimate.LineItem{}, priceErr
		}
		part, partErr := estimate.NewPart(p.Number, p.Quantity, price)
		if partErr != nil {
			return estimate.LineItem{}, partErr
		}
		parts = append(parts, part)
	}

	codes := estimate.Codes{
		Repair:    dto.RepairCode,
		Damage:    dto.DamageCode,
		Material:  dto.MaterialCode,
		Component: dto.ComponentCode,
		Location:  dto.LocationCode,
	}
	return estimate.NewLineItem(codes, dto.Description, hours, material, rate, responsible, dto.Quantity, parts)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
