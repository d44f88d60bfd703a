package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthapp/healthcare-portal/internal/auth"
	"github.com/healthapp/healthcare-portal/internal/config"
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/observability"
	"github.com/healthapp/healthcare-portal/internal/persistence"
	"github.com/healthapp/healthcare-portal/internal/repository/memory"
	"github.com/healthapp/healthcare-portal/internal/service"
)

type approvingGateway struct{}

func (approvingGateway) Charge(context.Context, float64, domain.PaymentMethod) (bool, error) {
	return true, nil
}

func newTestServer(t *testing.T) (*fiber.App, service.Repositories) {
	t.Helper()
	return newTestServerWithMetrics(t, nil)
}

func newTestServerWithMetrics(t *testing.T, metrics *observability.Metrics) (*fiber.App, service.Repositories) {
	t.Helper()
	repos := persistence.MemoryRepositories(memory.NewStore())
	app, err := NewServer(ServerDeps{
		Config: config.Config{
			App:        config.AppConfig{Name: "healthcare-portal-test"},
			Auth:       config.AuthConfig{JWTSecret: "test-secret", BcryptCost: 4},
			HealthCard: config.HealthCardConfig{QRBaseURL: "https://qr.example/?data="},
		},
		Repos:   repos,
		Gateway: approvingGateway{},
		Metrics: metrics,
	})
	require.NoError(t, err)
	return app, repos
}

func do(t *testing.T, app *fiber.App, method, path, body string, cookie *http.Cookie) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	payload := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == auth.CookieName {
			return &http.Cookie{Name: ck.Name, Value: ck.Value}
		}
	}
	t.Fatalf("response did not set %s", auth.CookieName)
	return nil
}

func register(t *testing.T, app *fiber.App, email string) (*http.Cookie, map[string]any) {
	t.Helper()
	resp, body := do(t, app, http.MethodPost, "/api/auth/register",
		`{"email":"`+email+`","password":"secret1","name":"A","role":"patient"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	return sessionCookie(t, resp), user
}

func seedAccount(t *testing.T, app *fiber.App, repos service.Repositories, role domain.Role, email string) (*http.Cookie, string) {
	t.Helper()
	hash, err := auth.HashPassword("staffpw", 4)
	require.NoError(t, err)
	user := &domain.User{Email: email, Role: role, Name: string(role), PasswordHash: hash}
	require.NoError(t, repos.Users.Create(context.Background(), user))

	resp, _ := do(t, app, http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"staffpw"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return sessionCookie(t, resp), user.ID
}

func seedDoctor(t *testing.T, app *fiber.App, repos service.Repositories) (*http.Cookie, string) {
	t.Helper()
	return seedAccount(t, app, repos, domain.RoleDoctor, "doc@x.com")
}

func TestSessionLifecycle(t *testing.T) {
	app, _ := newTestServer(t)

	cookie, user := register(t, app, "a@b.com")
	assert.Equal(t, "patient", user["role"])
	assert.Equal(t, "a@b.com", user["email"])

	resp, body := do(t, app, http.MethodGet, "/api/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := body["user"].(map[string]any)
	assert.Equal(t, user["id"], me["id"])
	assert.Equal(t, "patient", me["role"])
	assert.NotContains(t, me, "passwordHash")

	resp, body = do(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	resp, body = do(t, app, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])

	resp, _ = do(t, app, http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","password":"secret1","name":"A"}`, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRoleGates(t *testing.T) {
	app, repos := newTestServer(t)
	patient, _ := register(t, app, "a@b.com")
	doctor, _ := seedDoctor(t, app, repos)
	pharmacist, _ := seedAccount(t, app, repos, domain.RolePharmacist, "pharm@x.com")
	admin, _ := seedAccount(t, app, repos, domain.RoleAdmin, "root@x.com")
	staffOf := func(role string) string {
		return `{"email":"` + role + `@staff.com","password":"staffpw1","name":"New ` + role + `","role":"` + role + `"}`
	}

	const medicine = `{"name":"Cetirizine","genericName":"Cetirizine","manufacturer":"AllerCare","category":"Antihistamine","price":5.49,"stock":120}`
	resp, body := do(t, app, http.MethodPost, "/api/medicines", medicine, pharmacist)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	medicineID := body["medicineId"].(string)

	tests := []struct {
		name       string
		method     string
		path       string
		cookie     *http.Cookie
		wantStatus int
		wantError  string
		body       string
	}{
		{"patient on admin api", http.MethodGet, "/api/admin/stats", patient, http.StatusUnauthorized, "Unauthorized - Admin only", ""},
		{"patient creating record", http.MethodPost, "/api/medical-records", patient, http.StatusUnauthorized, "Unauthorized - Doctor access only", ""},
		{"doctor booking", http.MethodPost, "/api/appointments", doctor, http.StatusUnauthorized, "Unauthorized", ""},
		{"doctor listing patients", http.MethodGet, "/api/patients", doctor, http.StatusOK, "", ""},
		{"anonymous medicines", http.MethodGet, "/api/medicines", nil, http.StatusUnauthorized, "Unauthorized", ""},
		{"doctor adding medicine", http.MethodPost, "/api/medicines", doctor, http.StatusUnauthorized, "Unauthorized", medicine},
		{"patient restocking medicine", http.MethodPatch, "/api/medicines/" + medicineID, patient, http.StatusUnauthorized, "Unauthorized", `{"stock":40}`},
		{"doctor deleting medicine", http.MethodDelete, "/api/medicines/" + medicineID, doctor, http.StatusUnauthorized, "Unauthorized", ""},
		{"pharmacist restocking medicine", http.MethodPatch, "/api/medicines/" + medicineID, pharmacist, http.StatusOK, "", `{"stock":40}`},
		{"admin adding medicine", http.MethodPost, "/api/medicines", admin, http.StatusCreated, "", strings.Replace(medicine, "Cetirizine", "Loratadine", 1)},
		{"doctor creating staff", http.MethodPost, "/api/admin/staff", doctor, http.StatusUnauthorized, "Unauthorized - Admin only", staffOf("admin")},
		{"admin creating admin", http.MethodPost, "/api/admin/staff", admin, http.StatusBadRequest, "Invalid role. Only doctor and pharmacist allowed", staffOf("admin")},
		{"admin creating pharmacist", http.MethodPost, "/api/admin/staff", admin, http.StatusCreated, "", staffOf("pharmacist")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, tt.method, tt.path, tt.body, tt.cookie)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestPageGateRedirects(t *testing.T) {
	app, repos := newTestServer(t)
	doctor, _ := seedDoctor(t, app, repos)

	resp, _ := do(t, app, http.MethodGet, "/admin/x", "", doctor)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/doctor/dashboard", resp.Header.Get("Location"))

	resp, body := do(t, app, http.MethodGet, "/doctor/dashboard", "", doctor)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "doctor.dashboard", body["page"])

	resp, _ = do(t, app, http.MethodGet, "/patient/dashboard", "", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, auth.LoginPath, resp.Header.Get("Location"))

	resp, _ = do(t, app, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAppointmentsAreRowScoped(t *testing.T) {
	app, repos := newTestServer(t)
	alice, _ := register(t, app, "alice@x.com")
	bob, _ := register(t, app, "bob@x.com")
	doctor, doctorID := seedDoctor(t, app, repos)

	resp, body := do(t, app, http.MethodPost, "/api/appointments",
		`{"doctorId":"`+doctorID+`","date":"2026-11-01","time":"09:00","reason":"checkup"}`, alice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	appt := body["appointment"].(map[string]any)
	apptID := appt["id"].(string)

	count := func(cookie *http.Cookie) int {
		resp, body := do(t, app, http.MethodGet, "/api/appointments", "", cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return len(body["appointments"].([]any))
	}
	assert.Equal(t, 1, count(alice))
	assert.Equal(t, 0, count(bob))
	assert.Equal(t, 1, count(doctor))

	resp, _ = do(t, app, http.MethodDelete, "/api/appointments/"+apptID, "", bob)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, app, http.MethodPost, "/api/payments/process",
		`{"appointmentId":"`+apptID+`","amount":50,"paymentMethod":"card"}`, alice)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = do(t, app, http.MethodGet, "/api/payments", "", bob)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["payments"])
}

func TestRequestMetricsRecordRenderedStatus(t *testing.T) {
	app, _ := newTestServerWithMetrics(t, observability.NewMetrics())

	resp, _ := do(t, app, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	exposition := string(raw)

	assert.Contains(t, exposition, `healthcare_http_requests_total{method="GET",route="/api/auth/me",status="401"} 1`)
	assert.NotContains(t, exposition, `healthcare_http_requests_total{method="GET",route="/api/auth/me",status="200"}`)
	assert.Contains(t, exposition, `healthcare_auth_denials_total{route="/api/auth/me"} 1`)
}
