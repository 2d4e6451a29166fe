// Package releaserepo persists releases together with their details, criteria and units.
package releaserepo

import (
	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/release"
)

type ReleaseDTO struct {
	Number    string           `gorm:"primaryKey;size:20"`
	Type      string           `gorm:"size:4"`
	Owner     shared.RefDTO    `gorm:"embedded;embeddedPrefix:owner_"`
	Header    shared.HeaderDTO `gorm:"embedded"`
	Cancelled bool
	Details   []DetailDTO `gorm:"foreignKey:ReleaseNumber;references:Number;constraint:OnDelete:CASCADE"`
}

func (ReleaseDTO) TableName() string {
	return "releases"
}

// DetailDTO is one release_details row. Criteria are stored as a JSON column.
type DetailDTO struct {
	ID            uint   `gorm:"primaryKey"`
	ReleaseNumber string `gorm:"size:20;index"`
	Position      int
	Customer      shared.RefDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Contract      string        `gorm:"size:20"`
	Equipment     string        `gorm:"size:10"`
	Quantity      int
	Criteria      []CriterionDTO `gorm:"serializer:json"`
	Units         []UnitDTO      `gorm:"foreignKey:DetailID;constraint:OnDelete:CASCADE"`
}

func (DetailDTO) TableName() string {
	return "release_details"
}

type CriterionDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type UnitDTO struct {
	ID            uint   `gorm:"primaryKey"`
	DetailID      uint   `gorm:"index"`
	ReleaseNumber string `gorm:"size:20;uniqueIndex:ux_release_unit,priority:1"`
	Position      int
	UnitNumber    string `gorm:"size:11;uniqueIndex:ux_release_unit,priority:2;index"`
	Status        string `gorm:"size:10"`
}

func (UnitDTO) TableName() string {
	return "release_units"
}

func fromDomain(r *release.Release) ReleaseDTO {
	dto := ReleaseDTO{
		Number:    r.Number(),
		Type:      r.Type().String(),
		Owner:     shared.FromRef(r.Owner()),
		Header:    shared.FromHeader(r.Header()),
		Cancelled: r.IsCancelled(),
	}

	for i, d := range r.Details() {
		detail := DetailDTO{
			ReleaseNumber: r.Number(),
			Position:      i,
			Customer:      shared.FromRef(d.Customer()),
			Contract:      d.Contract(),
			Equipment:     d.Equipment(),
			Quantity:      d.Quantity(),
			Criteria:      make([]CriterionDTO, 0, len(d.Criteria())),
		}
		for _, c := range d.Criteria() {
			detail.Criteria = append(detail.Criteria, CriterionDTO{Key: c.Key(), Value: c.Value()})
		}
		for j, u := range d.Units() {
			detail.Units = append(detail.Units, UnitDTO{
				ReleaseNumber: r.Number(),
				Position:      j,
				UnitNumber:    u.UnitNumber().String(),
				Status:        u.Status().String(),
			})
		}
		dto.Details = append(dto.Details, detail)
	}

	return dto
}

func toDomain(dto ReleaseDTO) (*release.Release, error) {
	header, err := dto.Header.ToHeader("releaseNumber", dto.Number)
	if err != nil {
		return nil, err
	}
	kind, err := release.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	details := make([]release.Detail, 0, len(dto.Details))
	for _, d := range dto.Details {
		criteria := make([]release.Criterion, 0, len(d.Criteria))
		for _, c := range d.Criteria {
			criterion, criterionErr := release.NewCriterion(c.Key, c.Value)
			if criterionErr != nil {
				return nil, criterionErr
			}
			criteria = append(criteria, criterion)
		}

		units := make([]release.Unit, 0, len(d.Units))
		for _, u := range d.Units {
			unit, unitErr := unitToDomain(u)
			if unitErr != nil {
				return nil, unitErr
			}
			units = append(units, unit)
		}

		detail, detailErr := release.NewDetail(d.Customer.ToRef(), d.Contract, d.Equipment, d.Quantity, criteria, units)
		if detailErr != nil {
			return nil, detailErr
		}
		details = append(details, detail)
	}

	return release.RestoreRelease(header, kind, dto.Owner.ToRef(), details, dto.Cancelled)
}

func unitToDomain(dto UnitDTO) (release.Unit, error) {
	unitNumber, err := kernel.NewUnitNumber(dto.UnitNumber)
	if err != nil {
		return release.Unit{}, err
	}
	status, err := release.ParseUnitStatus(dto.Status)
	if err != nil {
		return release.Unit{}, err
	}
	return release.RestoreUnit(unitNumber, status)
}
