// Package workorderrepo persists work orders and their units.
package workorderrepo

import (
	"time"

	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/workorder"
)

type WorkOrderDTO struct {
	Number           string        `gorm:"primaryKey;size:20"`
	Depot            shared.RefDTO `gorm:"embedded;embeddedPrefix:depot_"`
	Owner            shared.RefDTO `gorm:"embedded;embeddedPrefix:owner_"`
	TargetCriteria   string        `gorm:"size:20"`
	EstimateNumber   *string       `gorm:"size:20"`
	EstimateRevision *int
	Remarks          string    `gorm:"size:2048"`
	Units            []UnitDTO `gorm:"foreignKey:WorkOrderNumber;references:Number;constraint:OnDelete:CASCADE"`
}

func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

type UnitDTO struct {
	ID              uint   `gorm:"primaryKey"`
	WorkOrderNumber string `gorm:"size:20;uniqueIndex:ux_work_order_unit,priority:1"`
	Position        int
	UnitNumber      string `gorm:"size:11;uniqueIndex:ux_work_order_unit,priority:2;index"`
	Status          string `gorm:"size:10"`
	RepairedAt      *time.Time
}

func (UnitDTO) TableName() string {
	return "work_order_units"
}

func fromDomain(w *workorder.WorkOrder) WorkOrderDTO {
	dto := WorkOrderDTO{
		Number:         w.Number(),
		Depot:          shared.FromRef(w.Depot()),
		Owner:          shared.FromRef(w.Owner()),
		TargetCriteria: w.TargetCriteria(),
		Remarks:        w.Remarks(),
	}
	if ref := w.Estimate(); ref != nil {
		number, revision := ref.Number, ref.Revision
		dto.EstimateNumber, dto.EstimateRevision = &number, &revision
	}
	for i, u := range w.Units() {
		dto.Units = append(dto.Units, UnitDTO{
			WorkOrderNumber: w.Number(),
			Position:        i,
			UnitNumber:      u.UnitNumber().String(),
			Status:          u.Status().String(),
			RepairedAt:      u.RepairedAt(),
		})
	}
	return dto
}

func toDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
	var ref *workorder.EstimateRef
	if dto.EstimateNumber != nil && dto.EstimateRevision != nil {
		ref = &workorder.EstimateRef{Number: *dto.EstimateNumber, Revision: *dto.EstimateRevision}
	}

	units := make([]workorder.Unit, 0, len(dto.Units))
	for _, u := range dto.Units {
		unitNumber, err := kernel.NewUnitNumber(u.UnitNumber)
		if err != nil {
			return nil, err
		}
		status, err := workorder.ParseUnitStatus(u.Status)
		if err != nil {
			return nil, err
		}
		unit, err := workorder.RestoreUnit(unitNumber, status, u.RepairedAt)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	return workorder.RestoreWorkOrder(
		dto.Number,
		dto.Depot.ToRef(),
		dto.Owner.ToRef(),
		dto.TargetCriteria,
		ref,
		dto.Remarks,
		units,
	)
}
