package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// CookieName carries the session token.
const CookieName = "auth-token"

// SessionAccessor bridges the request cookie jar and the token manager.
// It holds no per-request state.
type SessionAccessor struct {
	tokens *TokenManager
	secure bool
}

// NewSessionAccessor constructs an accessor; secure marks cookies HTTPS-only.
func NewSessionAccessor(tokens *TokenManager, secure bool) *SessionAccessor {
	return &SessionAccessor{tokens: tokens, secure: secure}
}

// Tokens exposes the token manager used for issuance.
func (s *SessionAccessor) Tokens() *TokenManager {
	return s.tokens
}

// Current returns the principal of the request's session cookie, if any.
func (s *SessionAccessor) Current(c *fiber.Ctx) (*domain.Principal, bool) {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return nil, false
	}
	return s.tokens.Verify(raw)
}

// Establish writes the session cookie.
func (s *SessionAccessor) Establish(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokens.TTL().Seconds()),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear expires the session cookie. The token itself stays valid until its
// natural expiry; there is no server-side revocation.
func (s *SessionAccessor) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
