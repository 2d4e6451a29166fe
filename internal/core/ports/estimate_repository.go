package ports

import (
	"context"

	"depot/internal/core/domain/model/estimate"
)

// EstimateRepository stores estimate revisions append-only. An estimate is
// rebuilt from its revisions and optional cancel request.
type EstimateRepository interface {
	Exists(ctx context.Context, key estimate.Key) (bool, error)

	// Get returns errs.ObjectNotFoundError when no revision exists for key.
	Get(ctx context.Context, key estimate.Key) (*estimate.Estimate, error)

	// AddRevision inserts revision of aggregate. Storing a revision number
	// twice is reported as errs.ConflictError.
	AddRevision(ctx context.Context, aggregate *estimate.Estimate, revision *estimate.Revision) error

	ListRevisions(ctx context.Context, key estimate.Key) ([]*estimate.Revision, error)

	// Cancel stores the cancel request of aggregate.
	Cancel(ctx context.Context, aggregate *estimate.Estimate) error

	// GetCancel returns nil when the estimate was never cancelled.
	GetCancel(ctx context.Context, key estimate.Key) (*estimate.CancelRequest, error)
}
