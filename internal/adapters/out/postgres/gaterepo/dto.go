// Package gaterepo persists the append-only gate log.
package gaterepo

import (
	"time"

	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/gate"
	"depot/internal/core/domain/model/kernel"
)

// RecordDTO is one gate_records row. Seq is the insertion sequence. At most one
// live row exists per (unit, advice, depot, direction).
type RecordDTO struct {
	Seq          int64         `gorm:"primaryKey;autoIncrement"`
	UnitNumber   string        `gorm:"size:11;index;uniqueIndex:ux_gate_live,priority:1,where:deleted = false"`
	AdviceNumber string        `gorm:"size:20;uniqueIndex:ux_gate_live,priority:2,where:deleted = false"`
	DepotKey     string        `gorm:"size:20;uniqueIndex:ux_gate_live,priority:3,where:deleted = false"`
	Direction    string        `gorm:"size:3;uniqueIndex:ux_gate_live,priority:4,where:deleted = false"`
	Depot        shared.RefDTO `gorm:"embedded;embeddedPrefix:depot_"`
	Condition    string        `gorm:"size:1"`
	ActivityTime time.Time     `gorm:"index"`
	Remarks      string        `gorm:"size:2048"`
	Deleted      bool          `gorm:"not null;default:false"`
}

func (RecordDTO) TableName() string {
	return "gate_records"
}

func fromDomain(r *gate.Record) RecordDTO {
	return RecordDTO{
		Seq:          r.Seq(),
		UnitNumber:   r.UnitNumber().String(),
		AdviceNumber: r.AdviceNumber(),
		DepotKey:     r.Depot().String(),
		Direction:    r.Direction().String(),
		Depot:        shared.FromRef(r.Depot()),
		Condition:    r.Condition().String(),
		ActivityTime: r.ActivityTime(),
		Remarks:      r.Remarks(),
		Deleted:      r.IsDeleted(),
	}
}

func toDomain(dto RecordDTO) (*gate.Record, error) {
	unitNumber, err := kernel.NewUnitNumber(dto.UnitNumber)
	if err != nil {
		return nil, err
	}
	direction, err := gate.ParseDirection(dto.Direction)
	if err != nil {
		return nil, err
	}
	condition, err := gate.ParseCondition(dto.Condition)
	if err != nil {
		return nil, err
	}

	return gate.RestoreRecord(
		dto.Seq,
		unitNumber,
		dto.AdviceNumber,
		dto.Depot.ToRef(),
		direction,
		condition,
		dto.ActivityTime,
		dto.Remarks,
		dto.Deleted,
	)
}
