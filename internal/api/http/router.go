package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/healthapp/healthcare-portal/internal/api/http/handlers"
	"github.com/healthapp/healthcare-portal/internal/auth"
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Appointments *handlers.AppointmentsHandler
	Clinical     *handlers.ClinicalHandler
	Catalog      *handlers.CatalogHandler
	Staff        *handlers.StaffHandler
	HealthCard   *handlers.HealthCardHandler
	Payments     *handlers.PaymentsHandler
	Pages        *handlers.PagesHandler
	Gate         *auth.Gate
	RouteGate    *auth.RouteGate
	Metrics      *observability.Metrics
}

var (
	adminOnly   = auth.Allow(domain.RoleAdmin).WithMessage("Unauthorized - Admin only")
	doctorOnly  = auth.Allow(domain.RoleDoctor).WithMessage("Unauthorized - Doctor access only")
	patientOnly = auth.Allow(domain.RolePatient)
	pharmacy    = auth.Allow(domain.RolePharmacist, domain.RoleAdmin)
	apptParties = auth.Allow(domain.RolePatient, domain.RoleDoctor, domain.RoleAdmin)
)

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	registerAPIRoutes(app.Group("/api"), cfg)
	registerPageRoutes(app, cfg)
}

func registerAPIRoutes(api fiber.Router, cfg RouteConfig) {
	gate := cfg.Gate
	session := gate.Require(auth.Authenticated)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", session, cfg.Auth.Me)

	api.Get("/profile", session, cfg.Auth.Profile)
	api.Put("/profile", session, cfg.Auth.UpdateProfile)

	api.Get("/appointments", session, cfg.Appointments.List)
	api.Post("/appointments", gate.Require(patientOnly), cfg.Appointments.Create)
	api.Patch("/appointments/:id", gate.Require(apptParties), cfg.Appointments.Update)
	api.Delete("/appointments/:id", gate.Require(apptParties), cfg.Appointments.Delete)

	api.Get("/medical-records", session, cfg.Clinical.ListRecords)
	api.Post("/medical-records", gate.Require(doctorOnly), cfg.Clinical.CreateRecord)
	api.Post("/medical-records/create", gate.Require(doctorOnly), cfg.Clinical.CreateRecord)
	api.Get("/prescriptions", session, cfg.Clinical.ListPrescriptions)
	api.Post("/prescriptions", gate.Require(doctorOnly), cfg.Clinical.CreatePrescription)
	api.Post("/prescriptions/create", gate.Require(doctorOnly), cfg.Clinical.CreatePrescription)

	api.Get("/medicines", session, cfg.Catalog.ListMedicines)
	api.Post("/medicines", gate.Require(pharmacy), cfg.Catalog.CreateMedicine)
	api.Patch("/medicines/:id", gate.Require(pharmacy), cfg.Catalog.UpdateMedicine)
	api.Delete("/medicines/:id", gate.Require(pharmacy), cfg.Catalog.DeleteMedicine)
	api.Get("/hospitals", session, cfg.Catalog.ListHospitals)
	api.Post("/hospitals", gate.Require(adminOnly), cfg.Catalog.CreateHospital)
	api.Get("/products", session, cfg.Catalog.ListProducts)

	admin := api.Group("/admin", gate.Require(adminOnly))
	admin.Get("/staff", cfg.Staff.ListStaff)
	admin.Post("/staff", cfg.Staff.CreateStaff)
	admin.Get("/stats", cfg.Staff.Stats)
	admin.Get("/appointments", cfg.Appointments.ListAll)

	api.Get("/patients", gate.Require(doctorOnly), cfg.Staff.ListPatients)
	api.Get("/doctors", session, cfg.Staff.ListDoctors)

	api.Get("/health-card", gate.Require(patientOnly), cfg.HealthCard.Get)
	api.Patch("/health-card", gate.Require(patientOnly), cfg.HealthCard.Update)
	api.Post("/health-card/scan", gate.Require(doctorOnly), cfg.HealthCard.Scan)

	api.Get("/payments", session, cfg.Payments.List)
	api.Post("/payments", session, cfg.Payments.Create)
	api.Post("/payments/process", session, cfg.Payments.Process)
}

func registerPageRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.RouteGate.Handle)

	app.Get("/", cfg.Pages.Render)
	app.Get("/auth/login", cfg.Pages.Render)
	app.Get("/auth/register", cfg.Pages.Render)
	for _, role := range domain.Roles() {
		app.Get(domain.RoleAreas[role]+"/*", cfg.Pages.Render)
	}
}
