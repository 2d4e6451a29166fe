// Package ports defines the persistence and messaging contracts of the depot
// domain. Adapters implement them; application handlers depend on them.
package ports

import (
	"context"

	"depot/internal/core/domain/model/party"
)

// PartyRepository stores parties by their lookup key.
type PartyRepository interface {
	// Find returns errs.ObjectNotFoundError when no party carries key.
	Find(ctx context.Context, key party.Key) (*party.Party, error)

	// Save creates the party unless one with the same key already exists,
	// in which case the stored party is returned unchanged.
	Save(ctx context.Context, p *party.Party) (*party.Party, error)
}
