package tableau

// Method identifies one of the built-in Runge-Kutta schemes. The zero value
// is the sentinel for "no such method"; lookups by name return it instead of
// an error so callers can probe the explicit and implicit families in turn.
type Method int

const (
	MethodUnknown Method = iota

	// Explicit methods.
	ExplicitEuler
	RungeKutta4
	BogackiShampine32
	CashKarp54
	DormandPrince54
	Fehlberg54

	// Implicit methods.
	ImplicitEuler
	ImplicitMidpoint
	LobattoIIIA21
	LobattoIIIC21
	RadauIA32
	RadauIIA32
	LobattoIIIA43
	LobattoIIIC43
	GaussLegendre42
	RadauIA54
	RadauIIA54
	GaussLegendre63
	LobattoIIIA65
	LobattoIIIC65
)

var methodNames = map[Method]string{
	ExplicitEuler:     "EXPLICIT_EULER",
	RungeKutta4:       "RUNGE_KUTTA_4",
	BogackiShampine32: "BOGACKI_SHAMPINE_32",
	CashKarp54:        "CASH_KARP_54",
	DormandPrince54:   "DORMAND_PRINCE_54",
	Fehlberg54:        "FEHLBERG_54",
	ImplicitEuler:     "IMPLICIT_EULER",
	ImplicitMidpoint:  "IMPLICIT_MIDPOINT",
	LobattoIIIA21:     "LOBATTO_IIIA_21",
	LobattoIIIC21:     "LOBATTO_IIIC_21",
	RadauIA32:         "RADAU_IA_32",
	RadauIIA32:        "RADAU_IIA_32",
	LobattoIIIA43:     "LOBATTO_IIIA_43",
	LobattoIIIC43:     "LOBATTO_IIIC_43",
	GaussLegendre42:   "GAUSS_LEGENDRE_42",
	RadauIA54:         "RADAU_IA_54",
	RadauIIA54:        "RADAU_IIA_54",
	GaussLegendre63:   "GAUSS_LEGENDRE_63",
	LobattoIIIA65:     "LOBATTO_IIIA_65",
	LobattoIIIC65:     "LOBATTO_IIIC_65",
}

// nameToMethod is the inverse of methodNames, built once at init and never
// mutated afterwards, so lookups need no locking.
var nameToMethod = func() map[string]Method {
	m := make(map[string]Method, len(methodNames))
	for id, name := range methodNames {
		m[name] = id
	}
	return m
}()

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsImplicit reports whether the method belongs to the implicit family.
func (m Method) IsImplicit() bool {
	return m >= ImplicitEuler && m <= LobattoIIIC65
}

// IsExplicit reports whether the method belongs to the explicit family.
func (m Method) IsExplicit() bool {
	return m >= ExplicitEuler && m <= Fehlberg54
}

// FromName resolves a canonical method name to its identifier, returning
// MethodUnknown when the name has no match.
func FromName(name string) Method {
	return nameToMethod[name]
}

// ExplicitFromName resolves name within the explicit family only.
func ExplicitFromName(name string) Method {
	if m := FromName(name); m.IsExplicit() {
		return m
	}
	return MethodUnknown
}

// ImplicitFromName resolves name within the implicit family only.
func ImplicitFromName(name string) Method {
	if m := FromName(name); m.IsImplicit() {
		return m
	}
	return MethodUnknown
}

// Methods returns all built-in method identifiers in declaration order.
func Methods() []Method {
	ms := make([]Method, 0, len(methodNames))
	for m := ExplicitEuler; m <= LobattoIIIC65; m++ {
		ms = append(ms, m)
	}
	return ms
}
