// internal/app/system/roles/roles.go
package roles

import "strings"

// Role is the closed set of actor roles. Authorization checks switch
// exhaustively over these; anything else fails closed.
type Role string

const (
	Volunteer     Role = "volunteer"
	OrgAdmin      Role = "orgadmin"
	PlatformAdmin Role = "platformadmin"
)

// Parse normalizes a raw role string and reports whether it names a known
// role. Unknown strings return ok=false so callers fail closed instead of
// drifting on string comparisons.
func Parse(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case Volunteer:
		return Volunteer, true
	case OrgAdmin:
		return OrgAdmin, true
	case PlatformAdmin:
		return PlatformAdmin, true
	}
	return "", false
}

// Valid reports whether r is a known role.
func Valid(r Role) bool {
	_, ok := Parse(string(r))
	return ok
}

func (r Role) String() string { return string(r) }
