// Package routing decides, for every navigation, whether the current visitor
// may see a given view, based on session presence and role.
package routing

// Role is the closed set of account types the backend produces.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleAmateur      Role = "amateur"
	RoleProfessional Role = "professional"
	RoleInstitution  Role = "institution"
)

// ParseRole maps a backend user_type string to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleAmateur, RoleProfessional, RoleInstitution:
		return Role(s), true
	}
	return "", false
}

// Well-known paths.
const (
	PathHome  = "/"
	PathLogin = "/login"
)

// dashboards is the redirect map: where each role lands after login.
var dashboards = map[Role]string{
	RoleAdmin:        "/admin_dashboard",
	RoleAmateur:      "/beginner_dashboard",
	RoleProfessional: "/professional_dashboard",
	RoleInstitution:  "/institut_dashboard",
}

// DashboardPath returns the landing path for the given backend role string.
// The function is total: an unmapped or missing role lands on /login rather
// than breaking navigation.
func DashboardPath(role string) string {
	if path, ok := dashboards[Role(role)]; ok {
		return path
	}
	return PathLogin
}
