package domain

// Principal is the identity decoded from a verified session token.
// Role is fixed when the token is issued and is not re-read from the store.
type Principal struct {
	SubjectID string
	Email     string
	Role      Role
	Name      string
}

// Is reports whether the principal holds one of roles.
func (p *Principal) Is(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}
