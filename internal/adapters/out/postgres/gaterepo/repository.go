package gaterepo

import (
	"context"

	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/gate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormGateRepository implements GateRepository using GORM.
type GormGateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate kernel.EventSource)
}

func NewGormGateRepository(db *gorm.DB, tracker aggregateTracker) *GormGateRepository {
	return &GormGateRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a record and assigns the sequence the database generated.
func (r *GormGateRepository) Add(ctx context.Context, record *gate.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	dto.Seq = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.TranslateCreateError("gate", record.Key(), err)
	}

	record.AssignSeq(dto.Seq)
	r.tracker.TrackAggregate(record)
	return nil
}

func (r *GormGateRepository) Update(ctx context.Context, record *gate.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("seq = ? AND deleted = false", record.Seq()).
		Updates(map[string]any{
			"condition":     record.Condition().String(),
			"activity_time": record.ActivityTime(),
			"remarks":       record.Remarks(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("gate", record.Key())
	}

	r.tracker.TrackAggregate(record)
	return nil
}

func (r *GormGateRepository) MarkDeleted(ctx context.Context, record *gate.Record) error {
	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("seq = ? AND deleted = false", record.Seq()).
		Update("deleted", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("gate", record.Key())
	}

	r.tracker.TrackAggregate(record)
	return nil
}

func (r *GormGateRepository) Find(ctx context.Context, key gate.Key) (*gate.Record, error) {
	var dto RecordDTO
	err := r.db.WithContext(ctx).
		Where("unit_number = ? AND advice_number = ? AND depot_key = ? AND direction = ?",
			key.UnitNumber, key.AdviceNumber, key.Depot, key.Direction.String()).
		Where("deleted = false").
		First(&dto).Error
	if err != nil {
		return nil, shared.TranslateGetError("gate", key, err)
	}

	return toDomain(dto)
}

func (r *GormGateRepository) ListByUnit(ctx context.Context, unitNumber kernel.UnitNumber) ([]*gate.Record, error) {
	var dtos []RecordDTO
	if err := r.db.WithContext(ctx).Order("seq").Find(&dtos, "unit_number = ?", unitNumber.String()).Error; err != nil {
		return nil, err
	}

	records := make([]*gate.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
