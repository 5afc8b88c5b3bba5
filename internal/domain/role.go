package domain

// Role is the single role label attached to an account.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// KnownRoles lists every role accepted at registration.
var KnownRoles = []Role{RoleAdmin, RoleManager, RoleUser}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range KnownRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Authorities returns the authority labels derived from the role.
// Today a role maps to exactly one authority; token claims carry the
// list shape so callers do not need to change if that ever widens.
func (r Role) Authorities() []string {
	return []string{string(r)}
}
