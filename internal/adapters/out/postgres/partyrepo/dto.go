// Package partyrepo persists parties keyed by their lookup key.
package partyrepo

import (
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PartyDTO is the parties row. LookupKey is unique so concurrent saves of the
// same party collapse into one row.
type PartyDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LookupKey string     `gorm:"size:30;uniqueIndex"`
	Kind      int        `gorm:"type:smallint"`
	CompanyID string     `gorm:"size:9;index"`
	Code      string     `gorm:"size:20"`
	Contact   ContactDTO `gorm:"embedded;embeddedPrefix:contact_"`
}

func (PartyDTO) TableName() string {
	return "parties"
}

// ContactDTO is embedded in the parties table.
type ContactDTO struct {
	Name    string         `gorm:"size:100"`
	Address string         `gorm:"size:255"`
	City    string         `gorm:"size:100"`
	Country string         `gorm:"size:100"`
	Phone   string         `gorm:"size:20"`
	Emails  pq.StringArray `gorm:"type:text[]"`
}

func fromDomain(p *party.Party) PartyDTO {
	contact := p.Contact()
	return PartyDTO{
		ID:        p.ID().Bytes(),
		LookupKey: string(p.Key()),
		Kind:      int(p.Kind()),
		CompanyID: p.CompanyID().String(),
		Code:      p.Code(),
		Contact: ContactDTO{
			Name:    contact.Name(),
			Address: contact.Address(),
			City:    contact.City(),
			Country: contact.Country(),
			Phone:   contact.Phone(),
			Emails:  pq.StringArray(contact.Emails()),
		},
	}
}

func toDomain(dto PartyDTO) (*party.Party, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	contact, err := party.NewContact(
		dto.Contact.Name,
		dto.Contact.Address,
		dto.Contact.City,
		dto.Contact.Country,
		dto.Contact.Phone,
		dto.Contact.Emails,
	)
	if err != nil {
		return nil, err
	}

	return party.RestoreParty(id, party.Kind(dto.Kind), dto.CompanyID, dto.Code, contact)
}
