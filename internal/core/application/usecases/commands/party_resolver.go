package commands

import (
	"context"
	"errors"

	"depot/internal/core/application/requests"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/core/ports"
	"depot/internal/pkg/errs"
)

// Role names scope party errors to the referencing context.
const (
	roleDepot             = "Depot"
	roleRecipient         = "Recipient"
	roleCustomer          = "Customer"
	roleOwner             = "Owner"
	roleBillingParty      = "Billing Party"
	roleInsuranceCoverage = "Insurance Coverage"
)

// partyResolver turns party payloads into references, reusing stored parties
// and creating missing ones. Parties met twice in one command are saved once.
type partyResolver struct {
	repo  ports.PartyRepository
	known map[party.Key]party.Ref
}

func newPartyResolver(repo ports.PartyRepository) *partyResolver {
	return &partyResolver{repo: repo, known: make(map[party.Key]party.Ref)}
}

// internal resolves a party addressed by company id.
func (r *partyResolver) internal(ctx context.Context, p requests.Party) (party.Ref, error) {
	companyID, err := kernel.NewCompanyID(p.CompanyID)
	if err != nil {
		return party.Ref{}, err
	}
	contact, err := contactOf(p.Contact)
	if err != nil {
		return party.Ref{}, err
	}
	candidate, err := party.NewParty(kernel.NewUUID(), companyID, contact)
	if err != nil {
		return party.Ref{}, err
	}
	return r.save(ctx, candidate)
}

// external resolves a party addressed by company id or code.
func (r *partyResolver) external(ctx context.Context, role string, p requests.ExternalParty) (party.Ref, error) {
	contact, err := contactOf(p.Contact)
	if err != nil {
		return party.Ref{}, err
	}
	candidate, err := party.NewExternalParty(kernel.NewUUID(), role, p.CompanyID, p.Code, contact)
	if err != nil {
		return party.Ref{}, err
	}
	return r.save(ctx, candidate)
}

// optional resolves an absent party to the zero reference.
func (r *partyResolver) optional(ctx context.Context, role string, p *requests.ExternalParty) (party.Ref, error) {
	if p == nil {
		return party.Ref{}, nil
	}
	return r.external(ctx, role, *p)
}

// existing looks up a party that must already be registered. Gate and
// estimate messages only name their depot and never create it.
func (r *partyResolver) existing(ctx context.Context, role, companyID string) (party.Ref, error) {
	key := party.KeyOf(companyID, "")
	if ref, ok := r.known[key]; ok {
		return ref, nil
	}
	p, err := r.repo.Find(ctx, key)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return party.Ref{}, errs.NewObjectNotFoundError(role+" Party", companyID)
		}
		return party.Ref{}, err
	}
	ref := party.RefTo(p)
	r.known[key] = ref
	return ref, nil
}

func (r *partyResolver) save(ctx context.Context, candidate *party.Party) (party.Ref, error) {
	if ref, ok := r.known[candidate.Key()]; ok {
		return ref, nil
	}
	stored, err := r.repo.Save(ctx, candidate)
	if err != nil {
		return party.Ref{}, err
	}
	ref := party.RefTo(stored)
	r.known[candidate.Key()] = ref
	return ref, nil
}

func contactOf(c requests.Contact) (party.Contact, error) {
	return party.NewContact(c.Name, c.Address, c.City, c.Country, c.Phone, c.Emails)
}
