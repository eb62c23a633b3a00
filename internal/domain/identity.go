package domain

// Role enumerates the three ResolveIt audiences.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleOfficer || r == RoleAdmin
}

// Identity is the authenticated caller as supplied by the identity provider.
type Identity struct {
	ID    int64
	Email string
	Name  string
	Role  Role
	Token string
}

// HasRole reports whether the identity carries role r.
func (i Identity) HasRole(r Role) bool {
	return i.Role == r
}

// IsPrivileged reports whether the identity may see officer-only content.
func (i Identity) IsPrivileged() bool {
	return i.Role == RoleOfficer || i.Role == RoleAdmin
}
