package requests

// Contact is the optional contact block of a party.
type Contact struct {
	Name    string   `json:"name,omitempty"    validate:"max=100"`
	Address string   `json:"address,omitempty" validate:"max=255"`
	City    string   `json:"city,omitempty"    validate:"max=100"`
	Country string   `json:"country,omitempty" validate:"max=100"`
	Phone   string   `json:"phone,omitempty"   validate:"max=20"`
	Emails  []string `json:"emails,omitempty"  validate:"max=10,dive,email"`
}

// Party is an internal party, always addressed by its EDI company id.
type Party struct {
	CompanyID string  `json:"companyId"      validate:"required,companyid"`
	Code      string  `json:"code,omitempty" validate:"max=10"`
	Contact   Contact `json:"contact"`
}

// ExternalParty may be addressed by company id, code or both. Carrying neither
// is an invariant violation reported by the domain with the role name.
type ExternalParty struct {
	CompanyID string  `json:"companyId,omitempty" validate:"omitempty,companyid"`
	Code      string  `json:"code,omitempty"      validate:"max=10"`
	Contact   Contact `json:"contact"`
}

// PartyRegistration registers a party outside of any advice.
type PartyRegistration struct {
	Kind      string  `json:"kind"                validate:"required,oneof=INTERNAL EXTERNAL"`
	CompanyID string  `json:"companyId,omitempty" validate:"required_if=Kind INTERNAL,omitempty,companyid"`
	Code      string  `json:"code,omitempty"      validate:"max=10"`
	Contact   Contact `json:"contact"`
}
