package ports

import (
	"context"

	"depot/internal/core/domain/model/redelivery"
	"depot/internal/core/domain/model/release"
)

// RedeliveryRepository stores redeliveries by redelivery number. Details and
// units are written together with their parent.
type RedeliveryRepository interface {
	Exists(ctx context.Context, number string) (bool, error)

	// Get returns errs.ObjectNotFoundError for an unknown number.
	Get(ctx context.Context, number string) (*redelivery.Redelivery, error)

	// Add returns errs.ConflictError when the number is already taken.
	Add(ctx context.Context, aggregate *redelivery.Redelivery) error

	// Update replaces header, details and units wholesale.
	Update(ctx context.Context, aggregate *redelivery.Redelivery) error
}

// ReleaseRepository stores releases by release number.
type ReleaseRepository interface {
	Exists(ctx context.Context, number string) (bool, error)
	Get(ctx context.Context, number string) (*release.Release, error)
	Add(ctx context.Context, aggregate *release.Release) error
	Update(ctx context.Context, aggregate *release.Release) error
}
