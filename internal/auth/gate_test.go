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

func newGateApp(t *testing.T, sessions *SessionAccessor) *fiber.App {
	t.Helper()
	gate, err := NewRouteGate(sessions, domain.RoleAreas)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(gate.Handle)
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString("page " + c.Path())
	})
	return app
}

func TestRouteGate(t *testing.T) {
	sessions := NewSessionAccessor(NewTokenManager(testSecret, time.Hour), false)
	app := newGateApp(t, sessions)

	tokenFor := func(role domain.Role) string {
		token, _, err := sessions.Tokens().Issue(samplePrincipal(role))
		require.NoError(t, err)
		return token
	}

	expired, _, err := NewTokenManager(testSecret, time.Hour).
		WithClock(fixedClock(time.Now().Add(-2 * time.Hour))).
		Issue(samplePrincipal(domain.RoleDoctor))
	require.NoError(t, err)

	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{"home is public", "/", "", http.StatusOK, ""},
		{"login is public", "/auth/login", "", http.StatusOK, ""},
		{"register is public", "/auth/register", "", http.StatusOK, ""},
		{"api bypasses page gate", "/api/auth/me", "", http.StatusOK, ""},
		{"no cookie redirects to login", "/patient/dashboard", "", http.StatusFound, LoginPath},
		{"invalid cookie redirects to login", "/patient/dashboard", "garbage", http.StatusFound, LoginPath},
		{"expired cookie redirects to login", "/doctor/dashboard", expired, http.StatusFound, LoginPath},
		{"own area allowed", "/doctor/profile", tokenFor(domain.RoleDoctor), http.StatusOK, ""},
		{"doctor into admin area redirected home", "/admin/staff", tokenFor(domain.RoleDoctor), http.StatusFound, "/doctor/dashboard"},
		{"patient into pharmacist area redirected home", "/pharmacist/dashboard", tokenFor(domain.RolePatient), http.StatusFound, "/patient/dashboard"},
		{"area prefix matches on segment boundary", "/doctors", tokenFor(domain.RoleDoctor), http.StatusFound, "/doctor/dashboard"},
		{"unknown page sends to own area", "/settings", tokenFor(domain.RoleAdmin), http.StatusFound, "/admin/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.token})
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
			}
		})
	}
}

func TestNewRouteGateRejectsIncompleteAreas(t *testing.T) {
	sessions := NewSessionAccessor(NewTokenManager(testSecret, time.Hour), false)
	_, err := NewRouteGate(sessions, map[domain.Role]string{
		domain.RolePatient: "/patient",
		domain.RoleDoctor:  "/doctor",
	})
	assert.Error(t, err)
}
