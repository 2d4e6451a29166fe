// Package queries contains read operations of the depot workflow.
// Party and gate history lookups run raw SQL over the database. The current
// gate and the advice, estimate and work order views load domain objects so
// derived values follow the domain rules.
package queries

import (
	"context"

	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/gate"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/redelivery"
	"depot/internal/core/domain/model/release"
	"depot/internal/core/domain/model/workorder"
)

type (
	RedeliveryReader interface {
		Get(ctx context.Context, number string) (*redelivery.Redelivery, error)
	}

	ReleaseReader interface {
		Get(ctx context.Context, number string) (*release.Release, error)
	}

	EstimateReader interface {
		Get(ctx context.Context, key estimate.Key) (*estimate.Estimate, error)
	}

	GateReader interface {
		ListByUnit(ctx context.Context, unitNumber kernel.UnitNumber) ([]*gate.Record, error)
	}

	WorkOrderReader interface {
		Get(ctx context.Context, number string) (*workorder.WorkOrder, error)
	}
)
