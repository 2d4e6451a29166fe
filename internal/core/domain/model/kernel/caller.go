package kernel

// Caller identifies who issued a command. Authentication happens upstream;
// the result is passed explicitly instead of living in ambient session state.
type Caller struct {
	name     string
	external bool
}

// InternalCaller is an authenticated depot user.
func InternalCaller(name string) Caller {
	return Caller{name: name}
}

// ExternalCaller is an anonymous or partner system caller (EDI feeds, Kafka).
func ExternalCaller(name string) Caller {
	return Caller{name: name, external: true}
}

// IsExternal reports whether upsert-on-update policy applies to this caller.
func (c Caller) IsExternal() bool {
	return c.external
}

func (c Caller) Name() string {
	if c.name == "" {
		return "anonymous"
	}
	return c.name
}
