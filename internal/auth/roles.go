package auth

import "github.com/healthapp/healthcare-portal/internal/domain"

// Policy is a declarative allowed-role set for one handler.
// An empty role list admits any authenticated principal.
type Policy struct {
	Roles   []domain.Role
	Message string
}

// Authenticated admits every valid session.
var Authenticated = Policy{}

// Allow builds a policy limited to roles.
func Allow(roles ...domain.Role) Policy {
	return Policy{Roles: roles}
}

// WithMessage sets the error text returned on denial.
func (p Policy) WithMessage(message string) Policy {
	p.Message = message
	return p
}

// Permits reports whether role satisfies the policy.
func (p Policy) Permits(role domain.Role) bool {
	if !role.Valid() {
		return false
	}
	if len(p.Roles) == 0 {
		return true
	}
	for _, allowed := range p.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}
