package ports

import (
	"context"

	"depot/internal/core/domain/model/gate"
	"depot/internal/core/domain/model/kernel"
)

// GateRepository keeps the append-only gate log. Deleted records stay stored
// with a marker.
type GateRepository interface {
	// Add inserts the record and assigns its insertion sequence.
	Add(ctx context.Context, record *gate.Record) error

	// Update rewrites condition, activity time and remarks of a live record.
	Update(ctx context.Context, record *gate.Record) error

	// MarkDeleted persists the deletion marker of record.
	MarkDeleted(ctx context.Context, record *gate.Record) error

	// Find returns the live record with key, or errs.ObjectNotFoundError.
	Find(ctx context.Context, key gate.Key) (*gate.Record, error)

	// ListByUnit returns every record of a unit, deleted ones included, in
	// insertion order.
	ListByUnit(ctx context.Context, unitNumber kernel.UnitNumber) ([]*gate.Record, error)
}
