package queries

import (
	"context"

	"gorm.io/gorm"
)

const gateRecordColumns = `
	seq,
	unit_number,
	advice_number,
	depot_key,
	direction,
	condition,
	activity_time,
	remarks,
	deleted
`

type GetUnitGateHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetUnitGateHistoryQueryHandler(db *gorm.DB) GetUnitGateHistoryQueryHandler {
	return GetUnitGateHistoryQueryHandler{db: db}
}

func (h GetUnitGateHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetUnitGateHistoryQuery,
) (GetUnitGateHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUnitGateHistoryQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+gateRecordColumns+`
		FROM gate_records
		WHERE unit_number = ?
		ORDER BY seq
	`, query.UnitNumber().String()).Rows()
	if err != nil {
		return GetUnitGateHistoryQueryResponse{}, err
	}
	defer rows.Close()

	gates := make([]GateRecordView, 0)
	for rows.Next() {
		view, err := scanGateRecord(rows)
		if err != nil {
			return GetUnitGateHistoryQueryResponse{}, err
		}
		gates = append(gates, view)
	}

	if err := rows.Err(); err != nil {
		return GetUnitGateHistoryQueryResponse{}, err
	}

	return GetUnitGateHistoryQueryResponse{Gates: gates}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGateRecord(row rowScanner) (GateRecordView, error) {
	var v GateRecordView
	err := row.Scan(
		&v.Seq,
		&v.UnitNumber,
		&v.AdviceNumber,
		&v.Depot,
		&v.Type,
		&v.Status,
		&v.ActivityTime,
		&v.Remarks,
		&v.Deleted,
	)
	if err != nil {
		return GateRecordView{}, err
	}
	v.ActivityTime = v.ActivityTime.UTC()
	return v, nil
}
