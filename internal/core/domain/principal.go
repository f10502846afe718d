package domain

import "strings"

// Role is the closed set of account roles.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleApplicant, RoleEmployer, RoleAdmin}

// ParseRole maps external spellings to a Role. The legacy "user" role is an
// applicant.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "applicant", "user":
		return RoleApplicant, true
	case "employer":
		return RoleEmployer, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// Principal is the actor behind a request. A nil *Principal is anonymous.
type Principal struct {
	ID          string
	Role        Role
	IsSuperuser bool
}

// Authenticated reports whether p identifies a real account.
func (p *Principal) Authenticated() bool {
	return p != nil && p.ID != ""
}

// Is reports whether p holds the given role.
func (p *Principal) Is(role Role) bool {
	return p.Authenticated() && p.Role == role
}

// Elevated reports superuser rights or the admin role.
func (p *Principal) Elevated() bool {
	return p.Authenticated() && (p.IsSuperuser || p.Role == RoleAdmin)
}
