package party

// Ref is the reference an advice keeps to a resolved party. Aggregates do not
// own parties; they point at them by identifier.
type Ref struct {
	companyID string
	code      string
}

// RefTo builds the reference to a stored party.
func RefTo(p *Party) Ref {
	if p == nil {
		return Ref{}
	}
	return Ref{companyID: p.companyID.String(), code: p.code}
}

// RestoreRef rebuilds a reference from persistence.
func RestoreRef(companyID, code string) Ref {
	return Ref{companyID: companyID, code: code}
}

func (r Ref) CompanyID() string { return r.companyID }
func (r Ref) Code() string      { return r.code }

func (r Ref) Key() Key {
	return KeyOf(r.companyID, r.code)
}

// IsZero reports an absent optional reference.
func (r Ref) IsZero() bool {
	return r.companyID == "" && r.code == ""
}

func (r Ref) String() string {
	if r.companyID != "" {
		return r.companyID
	}
	return r.code
}
