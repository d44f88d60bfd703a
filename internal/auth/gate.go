package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/auth/login"

var (
	publicExact    = []string{"/"}
	publicPrefixes = []string{"/auth/login", "/auth/register"}
	// Non-page prefixes carry their own handler-level checks.
	bypassPrefixes = []string{"/api", "/health", "/metrics"}
)

// RouteGate guards page routes: a valid session whose role area contains
// the requested path, redirecting instead of rejecting otherwise.
type RouteGate struct {
	sessions *SessionAccessor
	areas    map[domain.Role]string
}

// NewRouteGate validates the role-to-area map and builds the gate.
func NewRouteGate(sessions *SessionAccessor, areas map[domain.Role]string) (*RouteGate, error) {
	if err := domain.ValidateAreas(areas); err != nil {
		return nil, fmt.Errorf("route gate: %w", err)
	}
	copied := make(map[domain.Role]string, len(areas))
	for role, area := range areas {
		copied[role] = area
	}
	return &RouteGate{sessions: sessions, areas: copied}, nil
}

// Handle is the fiber middleware.
func (g *RouteGate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	if isPublicPath(path) || hasAnyPrefix(path, bypassPrefixes) {
		return c.Next()
	}

	principal, ok := g.sessions.Current(c)
	if !ok {
		return c.Redirect(LoginPath, fiber.StatusFound)
	}

	area := g.areas[principal.Role]
	if !domain.InArea(path, area) {
		return c.Redirect(g.Landing(principal.Role), fiber.StatusFound)
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// Landing returns the default page of a role's area.
func (g *RouteGate) Landing(role domain.Role) string {
	return g.areas[role] + "/dashboard"
}

func isPublicPath(path string) bool {
	for _, p := range publicExact {
		if path == p {
			return true
		}
	}
	return hasAnyPrefix(path, publicPrefixes)
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
