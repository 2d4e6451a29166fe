package estimaterepo

import (
	"context"
	"fmt"

	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEstimateRepository implements EstimateRepository using GORM.
type GormEstimateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate kernel.EventSource)
}

func NewGormEstimateRepository(db *gorm.DB, tracker aggregateTracker) *GormEstimateRepository {
	return &GormEstimateRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormEstimateRepository) Exists(ctx context.Context, key estimate.Key) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&EstimateDTO{}).
		Where("number = ? AND depot = ?", key.Number, key.Depot).
		Count(&count).Error
	return count > 0, err
}

func (r *GormEstimateRepository) Get(ctx context.Context, key estimate.Key) (*estimate.Estimate, error) {
	dto, err := r.find(ctx, key)
	if err != nil {
		return nil, err
	}

	revisions, err := r.ListRevisions(ctx, key)
	if err != nil {
		return nil, err
	}

	cancel, err := cancelToDomain(dto)
	if err != nil {
		return nil, err
	}

	unitNumber, err := kernel.NewUnitNumber(dto.UnitNumber)
	if err != nil {
		return nil, err
	}

	return estimate.RestoreEstimate(dto.Number, dto.DepotParty.ToRef(), unitNumber, revisions, cancel)
}

// AddRevision stores revision. The first revision also creates the estimate row.
func (r *GormEstimateRepository) AddRevision(
	ctx context.Context,
	aggregate *estimate.Estimate,
	revision *estimate.Revision,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	key := aggregate.Key()
	db := r.db.WithContext(ctx)
	if revision.Number() == 1 {
		dto := estimateFromDomain(aggregate)
		if err := db.Create(&dto).Error; err != nil {
			return shared.TranslateCreateError("estimate", key, err)
		}
	}

	dto := revisionFromDomain(key, revision)
	if err := db.Create(&dto).Error; err != nil {
		return shared.TranslateCreateError("estimate revision", fmt.Sprintf("%s#%d", key, revision.Number()), err)
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// ListRevisions returns the revisions of key ordered by revision number.
func (r *GormEstimateRepository) ListRevisions(ctx context.Context, key estimate.Key) ([]*estimate.Revision, error) {
	var dtos []RevisionDTO
	err := r.db.WithContext(ctx).
		Where("estimate_number = ? AND depot = ?", key.Number, key.Depot).
		Order("revision").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	revisions := make([]*estimate.Revision, 0, len(dtos))
	for _, dto := range dtos {
		revision, convErr := revisionToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		revisions = append(revisions, revision)
	}

	return revisions, nil
}

// Cancel stores the cancel request of aggregate once.
func (r *GormEstimateRepository) Cancel(ctx context.Context, aggregate *estimate.Estimate) error {
	req := aggregate.CancelRequest()
	if req == nil {
		return errs.NewValueIsRequiredError("cancelRequest")
	}

	key := aggregate.Key()
	result := r.db.WithContext(ctx).Model(&EstimateDTO{}).
		Where("number = ? AND depot = ? AND cancel_requested_at IS NULL", key.Number, key.Depot).
		Updates(map[string]any{
			"cancel_reason":       req.Reason(),
			"cancel_requested_by": req.RequestedBy(),
			"cancel_requested_at": req.RequestedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := r.Exists(ctx, key)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("estimate", key)
		}
		return errs.NewConflictError("estimate", key, "is cancelled")
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormEstimateRepository) GetCancel(ctx context.Context, key estimate.Key) (*estimate.CancelRequest, error) {
	dto, err := r.find(ctx, key)
	if err != nil {
		return nil, err
	}
	return cancelToDomain(dto)
}

func (r *GormEstimateRepository) find(ctx context.Context, key estimate.Key) (EstimateDTO, error) {
	var dto EstimateDTO
	err := r.db.WithContext(ctx).First(&dto, "number = ? AND depot = ?", key.Number, key.Depot).Error
	if err != nil {
		return EstimateDTO{}, shared.TranslateGetError("estimate", key, err)
	}
	return dto, nil
}
