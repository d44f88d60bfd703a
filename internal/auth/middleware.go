package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/domain"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Gate is the handler-level access check for API routes.
type Gate struct {
	sessions *SessionAccessor
	onDeny   func(path string)
}

// NewGate constructs the handler-level gate.
func NewGate(sessions *SessionAccessor) *Gate {
	return &Gate{sessions: sessions}
}

// OnDeny registers a hook called for every rejected request.
func (g *Gate) OnDeny(fn func(path string)) *Gate {
	g.onDeny = fn
	return g
}

// Authorize verifies the session cookie and checks the principal against
// policy. A missing session and a role outside the policy fail identically.
func (g *Gate) Authorize(c *fiber.Ctx, policy Policy) (*domain.Principal, error) {
	principal, ok := g.sessions.Current(c)
	if !ok || !policy.Permits(principal.Role) {
		if g.onDeny != nil {
			g.onDeny(routePattern(c))
		}
		return nil, apperrors.NewUnauthorized(policy.Message)
	}
	c.Locals(principalKey, principal)
	return principal, nil
}

// routePattern is the matched route template, so ids do not become label values.
func routePattern(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return c.Path()
}

// Require wraps Authorize as route middleware.
func (g *Gate) Require(policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := g.Authorize(c, policy); err != nil {
			return err
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the principal stored by a gate.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
