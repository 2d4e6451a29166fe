package partyrepo

import (
	"context"

	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/party"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartyRepository implements PartyRepository using GORM.
type GormPartyRepository struct {
	db *gorm.DB
}

func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

// Find retrieves a party by lookup key.
func (r *GormPartyRepository) Find(ctx context.Context, key party.Key) (*party.Party, error) {
	var dto PartyDTO
	if err := r.db.WithContext(ctx).First(&dto, "lookup_key = ?", string(key)).Error; err != nil {
		return nil, shared.TranslateGetError("party", key, err)
	}
	return toDomain(dto)
}

// Save inserts p unless its lookup key is taken, then returns the stored row.
func (r *GormPartyRepository) Save(ctx context.Context, p *party.Party) (*party.Party, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(p)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "lookup_key"}}, DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	return r.Find(ctx, p.Key())
}
