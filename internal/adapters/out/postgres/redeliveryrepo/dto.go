// Package redeliveryrepo persists redeliveries together with their details and units.
package redeliveryrepo

import (
	"time"

	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/redelivery"
)

// RedeliveryDTO is the redeliveries row.
type RedeliveryDTO struct {
	Number    string           `gorm:"primaryKey;size:20"`
	Header    shared.HeaderDTO `gorm:"embedded"`
	Cancelled bool
	Details   []DetailDTO `gorm:"foreignKey:RedeliveryNumber;references:Number;constraint:OnDelete:CASCADE"`
}

func (RedeliveryDTO) TableName() string {
	return "redeliveries"
}

// DetailDTO is one redelivery_details row. Position keeps declaration order.
type DetailDTO struct {
	ID                 uint   `gorm:"primaryKey"`
	RedeliveryNumber   string `gorm:"size:20;index"`
	Position           int
	Customer           shared.RefDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Contract           string        `gorm:"size:20"`
	Equipment          string        `gorm:"size:10"`
	InsuranceCoverage  shared.RefDTO `gorm:"embedded;embeddedPrefix:insurance_"`
	InspectionCriteria string        `gorm:"size:20"`
	BillingParty       shared.RefDTO `gorm:"embedded;embeddedPrefix:billing_"`
	Quantity           int
	Units              []UnitDTO `gorm:"foreignKey:DetailID;constraint:OnDelete:CASCADE"`
}

func (DetailDTO) TableName() string {
	return "redelivery_details"
}

// UnitDTO is one redelivery_units row. A unit appears once per redelivery.
type UnitDTO struct {
	ID                 uint   `gorm:"primaryKey"`
	DetailID           uint   `gorm:"index"`
	RedeliveryNumber   string `gorm:"size:20;uniqueIndex:ux_redelivery_unit,priority:1"`
	Position           int
	UnitNumber         string `gorm:"size:11;uniqueIndex:ux_redelivery_unit,priority:2;index"`
	ManufactureDate    time.Time
	LastOnHireDate     *time.Time
	LastOnHireLocation string        `gorm:"size:100"`
	Status             string        `gorm:"size:10"`
	BillingParty       shared.RefDTO `gorm:"embedded;embeddedPrefix:billing_"`
}

func (UnitDTO) TableName() string {
	return "redelivery_units"
}

func fromDomain(r *redelivery.Redelivery) RedeliveryDTO {
	dto := RedeliveryDTO{
		Number:    r.Number(),
		Header:    shared.FromHeader(r.Header()),
		Cancelled: r.IsCancelled(),
	}

	for i, d := range r.Details() {
		detail := DetailDTO{
			RedeliveryNumber:   r.Number(),
			Position:           i,
			Customer:           shared.FromRef(d.Customer()),
			Contract:           d.Contract(),
			Equipment:          d.Equipment(),
			InsuranceCoverage:  shared.FromRef(d.InsuranceCoverage()),
			InspectionCriteria: d.InspectionCriteria(),
			BillingParty:       shared.FromRef(d.BillingParty()),
			Quantity:           d.Quantity(),
		}
		for j, u := range d.Units() {
			detail.Units = append(detail.Units, UnitDTO{
				RedeliveryNumber:   r.Number(),
				Position:           j,
				UnitNumber:         u.UnitNumber().String(),
				ManufactureDate:    u.ManufactureDate(),
				LastOnHireDate:     u.LastOnHireDate(),
				LastOnHireLocation: u.LastOnHireLocation(),
				Status:             u.Status().String(),
				BillingParty:       shared.FromRef(u.BillingParty()),
			})
		}
		dto.Details = append(dto.Details, detail)
	}

	return dto
}

func toDomain(dto RedeliveryDTO) (*redelivery.Redelivery, error) {
	header, err := dto.Header.ToHeader("redeliveryNumber", dto.Number)
	if err != nil {
		return nil, err
	}

	details := make([]redelivery.Detail, 0, len(dto.Details))
	for _, d := range dto.Details {
		units := make([]redelivery.Unit, 0, len(d.Units))
		for _, u := range d.Units {
			unit, unitErr := unitToDomain(u)
			if unitErr != nil {
				return nil, unitErr
			}
			units = append(units, unit)
		}

		detail, detailErr := redelivery.NewDetail(
			d.Customer.ToRef(),
			d.Contract,
			d.Equipment,
			d.InsuranceCoverage.ToRef(),
			d.InspectionCriteria,
			d.BillingParty.ToRef(),
			d.Quantity,
			units,
		)
		if detailErr != nil {
			return nil, detailErr
		}
		details = append(details, detail)
	}

	return redelivery.RestoreRedelivery(header, details, dto.Cancelled)
}

func unitToDomain(dto UnitDTO) (redelivery.Unit, error) {
	unitNumber, err := kernel.NewUnitNumber(dto.UnitNumber)
	if err != nil {
		return redelivery.Unit{}, err
	}
	status, err := redelivery.ParseUnitStatus(dto.Status)
	if err != nil {
		return redelivery.Unit{}, err
	}
	return redelivery.RestoreUnit(
		unitNumber,
		dto.ManufactureDate,
		dto.LastOnHireDate,
		dto.LastOnHireLocation,
		status,
		dto.BillingParty.ToRef(),
	)
}
