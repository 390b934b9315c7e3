package domain

// Role is the canonical department or permission category of an identity.
type Role string

const (
	// RoleUnknown is the zero value. It is what ParseRole yields for strings
	// that match no canonical role or legacy alias.
	RoleUnknown     Role = ""
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleFinance     Role = "finance"
	RoleEngineering Role = "engineering"
	RoleHR          Role = "hr"
	RoleCommercial  Role = "commercial"
	RolePurchasing  Role = "purchasing"
)

var canonicalRoles = []Role{
	RoleAdmin,
	RoleManager,
	RoleFinance,
	RoleEngineering,
	RoleHR,
	RoleCommercial,
	RolePurchasing,
}

// legacyRoles maps the role strings stored by the identity directory to
// canonical roles. Matching is exact: "Admin" and "ADMIN" are not aliases.
var legacyRoles = map[string]Role{
	"admin":       RoleAdmin,
	"manager":     RoleManager,
	"Manager":     RoleManager,
	"Gerente":     RoleManager,
	"Finanaceiro": RoleFinance,
	"Engenharia":  RoleEngineering,
	"RH":          RoleHR,
	"Comercial":   RoleCommercial,
	"Compras":     RolePurchasing,
}

// Roles returns every canonical role in display order.
func Roles() []Role {
	out := make([]Role, len(canonicalRoles))
	copy(out, canonicalRoles)
	return out
}

// ParseRole canonicalizes a raw role string. Legacy aliases and canonical
// names are both accepted; anything else yields RoleUnknown and false.
func ParseRole(raw string) (Role, bool) {
	if r, ok := legacyRoles[raw]; ok {
		return r, true
	}
	for _, r := range canonicalRoles {
		if string(r) == raw {
			return r, true
		}
	}
	return RoleUnknown, false
}

// Aliases returns every raw string that canonicalizes to r, the canonical
// name included. Directory queries use it to match users stored under
// legacy spellings.
func (r Role) Aliases() []string {
	if !r.Valid() {
		return nil
	}
	out := []string{string(r)}
	for raw, role := range legacyRoles {
		if role == r && raw != string(r) {
			out = append(out, raw)
		}
	}
	return out
}

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	for _, c := range canonicalRoles {
		if c == r {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}
