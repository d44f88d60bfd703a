package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

func newSessionApp(t *testing.T, sessions *SessionAccessor) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		token, _, err := sessions.Tokens().Issue(samplePrincipal(domain.RolePatient))
		if err != nil {
			return err
		}
		sessions.Establish(c, token)
		return c.SendStatus(http.StatusNoContent)
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		sessions.Clear(c)
		return c.SendStatus(http.StatusNoContent)
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		p, ok := sessions.Current(c)
		if !ok {
			return c.SendStatus(http.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{"id": p.SubjectID, "role": p.Role})
	})
	return app
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == CookieName {
			return ck
		}
	}
	t.Fatalf("response did not set %s", CookieName)
	return nil
}

func TestSessionEstablishCookieAttributes(t *testing.T) {
	tests := []struct {
		name   string
		secure bool
	}{
		{"development", false},
		{"production", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := NewSessionAccessor(NewTokenManager(testSecret, DefaultSessionTTL), tt.secure)
			app := newSessionApp(t, sessions)

			resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
			require.NoError(t, err)

			ck := sessionCookie(t, resp)
			assert.NotEmpty(t, ck.Value)
			assert.True(t, ck.HttpOnly)
			assert.Equal(t, tt.secure, ck.Secure)
			assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
			assert.Equal(t, "/", ck.Path)
			assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), ck.MaxAge)
		})
	}
}

func TestSessionCurrent(t *testing.T) {
	sessions := NewSessionAccessor(NewTokenManager(testSecret, time.Hour), false)
	app := newSessionApp(t, sessions)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	ck := sessionCookie(t, resp)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: ck.Value})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged.token.value"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutDoesNotRevokeCapturedToken(t *testing.T) {
	sessions := NewSessionAccessor(NewTokenManager(testSecret, time.Hour), false)
	app := newSessionApp(t, sessions)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	captured := sessionCookie(t, resp).Value

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: captured})
	resp, err = app.Test(req)
	require.NoError(t, err)

	cleared := sessionCookie(t, resp)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(time.Now()))

	// Logout only clears the client cookie; the captured token still verifies.
	_, ok := sessions.Tokens().Verify(captured)
	assert.True(t, ok)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: captured})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
