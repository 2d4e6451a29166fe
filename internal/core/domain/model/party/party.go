package party

import (
	"errors"
	"fmt"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var (
	ErrPartyIsNotConstructed   = errors.New("Party must be created via NewParty or NewExternalParty constructor")
	ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact constructor")
)

// Kind discriminates the two party variants.
type Kind int

const (
	// KindUnknown is the zero value and never valid.
	KindUnknown Kind = iota
	// KindInternal parties are always addressed by their EDI company id.
	KindInternal
	// KindExternal parties may be addressed by company id or by an internal code.
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "Internal"
	case KindExternal:
		return "External"
	default:
		return "Unknown"
	}
}

func (k Kind) Validate() error {
	if k != KindInternal && k != KindExternal {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid party kind", k))
	}
	return nil
}

// Key is the lookup identity of a party: the company id when present,
// otherwise the code prefixed with "code:".
type Key string

// KeyOf builds the lookup key for a company id / code pair.
func KeyOf(companyID, code string) Key {
	if companyID != "" {
		return Key(companyID)
	}
	return Key("code:" + code)
}

// Contact holds the postal and messaging details of a party.
type Contact struct {
	name    string
	address string
	city    string
	country string
	phone   string
	emails  []string
	guard   guard.ConstructorGuard
}

// NewContact bounds every free text field. All fields are optional.
func NewContact(name, address, city, country, phone string, emails []string) (Contact, error) {
	c := Contact{guard: guard.NewConstructorGuard()}
	var errName, errAddress, errCity, errCountry, errPhone error
	c.name, errName = kernel.BoundedText("name", name, kernel.NameMaxLength)
	c.address, errAddress = kernel.BoundedText("address", address, kernel.AddressMaxLength)
	c.city, errCity = kernel.BoundedText("city", city, kernel.NameMaxLength)
	c.country, errCountry = kernel.BoundedText("country", country, kernel.NameMaxLength)
	c.phone, errPhone = kernel.BoundedText("phone", phone, kernel.KeyMaxLength)
	if err := errors.Join(errName, errAddress, errCity, errCountry, errPhone); err != nil {
		return Contact{}, err
	}
	c.emails = append([]string(nil), emails...)
	return c, nil
}

func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

func (c Contact) Name() string    { return c.name }
func (c Contact) Address() string { return c.address }
func (c Contact) City() string    { return c.city }
func (c Contact) Country() string { return c.country }
func (c Contact) Phone() string   { return c.phone }

func (c Contact) Emails() []string {
	return append([]string(nil), c.emails...)
}

// Party is a depot, customer, owner, recipient or billing counterpart.
//
// Invariants:
//   - internal parties carry a company id
//   - external parties carry a company id, a code, or both
type Party struct {
	id        kernel.UUID
	kind      Kind
	companyID kernel.CompanyID
	code      string
	contact   Contact
	guard     guard.ConstructorGuard
}

// NewParty creates an internal party addressed by its EDI company id.
func NewParty(id kernel.UUID, companyID kernel.CompanyID, contact Contact) (*Party, error) {
	p := &Party{kind: KindInternal, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		p.setID(id),
		companyID.Validate(),
		p.setContact(contact),
	); err != nil {
		return nil, err
	}
	p.companyID = companyID
	return p, nil
}

// NewExternalParty creates a party that carries a company id, a code or both.
// role names the referencing context ("Customer", "Recipient") and scopes the
// invariant error when neither identifier is set.
func NewExternalParty(id kernel.UUID, role, companyID, code string, contact Contact) (*Party, error) {
	if companyID == "" && code == "" {
		return nil, errs.NewInvariantViolatedError(role, "must carry a companyId or a code")
	}

	p := &Party{kind: KindExternal, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		p.setID(id),
		p.setOptionalCompanyID(companyID),
		p.setCode(code),
		p.setContact(contact),
	); err != nil {
		return nil, err
	}
	return p, nil
}

// RestoreParty rebuilds a party from persistence.
func RestoreParty(id kernel.UUID, kind Kind, companyID, code string, contact Contact) (*Party, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if kind == KindExternal {
		return NewExternalParty(id, "Party", companyID, code, contact)
	}
	cid, err := kernel.NewCompanyID(companyID)
	if err != nil {
		return nil, err
	}
	p, err := NewParty(id, cid, contact)
	if err != nil {
		return nil, err
	}
	if err = p.setCode(code); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Party) Validate() error {
	if p == nil {
		return ErrPartyIsNotConstructed
	}
	return p.guard.Validate(ErrPartyIsNotConstructed)
}

func (p *Party) ID() kernel.UUID             { return p.id }
func (p *Party) Kind() Kind                  { return p.kind }
func (p *Party) CompanyID() kernel.CompanyID { return p.companyID }
func (p *Party) Code() string                { return p.code }
func (p *Party) Contact() Contact            { return p.contact }

// Key returns the lookup identity used by the party store.
func (p *Party) Key() Key {
	return KeyOf(p.companyID.String(), p.code)
}

func (p *Party) IsEqual(other *Party) bool {
	return other != nil && p.Key() == other.Key()
}

func (p *Party) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Party) setOptionalCompanyID(companyID string) error {
	if companyID == "" {
		return nil
	}
	cid, err := kernel.NewCompanyID(companyID)
	if err != nil {
		return err
	}
	p.companyID = cid
	return nil
}

func (p *Party) setCode(code string) error {
	v, err := kernel.BoundedText("code", code, kernel.CodeMaxLength)
	if err != nil {
		return err
	}
	p.code = v
	return nil
}

func (p *Party) setContact(contact Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	p.contact = contact
	return nil
}
