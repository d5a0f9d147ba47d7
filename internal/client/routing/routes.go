package routing

// Rule describes the access requirement of a single path.
// A zero Rule means "authenticated, any role".
type Rule struct {
	// Public paths render without a session.
	Public bool

	// Required restricts the path to one role. Empty means any
	// authenticated role is acceptable.
	Required Role
}

// Table maps paths to their access rules. This is the only configuration
// the access controller consumes.
type Table map[string]Rule

// Lookup returns the rule for path. Unknown paths are treated as public:
// the bulk of the product is marketing and informational pages.
func (t Table) Lookup(path string) Rule {
	if rule, ok := t[path]; ok {
		return rule
	}
	return Rule{Public: true}
}

// DefaultTable is the route surface of the client.
func DefaultTable() Table {
	return Table{
		PathHome:           {Public: true},
		PathLogin:          {Public: true},
		"/register":        {Public: true},
		"/forgot_password": {Public: true},

		"/admin_dashboard":        {Required: RoleAdmin},
		"/beginner_dashboard":     {Required: RoleAmateur},
		"/professional_dashboard": {Required: RoleProfessional},
		"/institut_dashboard":     {Required: RoleInstitution},

		// Any authenticated role.
		"/profile": {},
		"/events":  {},
		"/jobs":    {},
		"/talents": {},
	}
}
