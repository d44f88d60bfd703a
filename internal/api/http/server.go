package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/healthapp/healthcare-portal/internal/api/http/handlers"
	"github.com/healthapp/healthcare-portal/internal/auth"
	"github.com/healthapp/healthcare-portal/internal/cache"
	"github.com/healthapp/healthcare-portal/internal/config"
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/events"
	"github.com/healthapp/healthcare-portal/internal/observability"
	"github.com/healthapp/healthcare-portal/internal/persistence"
	"github.com/healthapp/healthcare-portal/internal/service"
	"github.com/healthapp/healthcare-portal/internal/worker"
)

// ServerDeps carries everything NewServer wires together.
type ServerDeps struct {
	Config     config.Config
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Repos      service.Repositories
	Cache      cache.Cache
	Dispatcher events.Dispatcher
	Gateway    service.Gateway
	Postgres   *persistence.Postgres
	Redis      *persistence.Redis
}

// NewServer builds the fiber application with every service, handler and gate.
func NewServer(deps ServerDeps) (*fiber.App, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher(logger)
	}
	gateway := deps.Gateway
	if gateway == nil {
		gateway = service.NewSimulatedGateway(cfg.Payment.SuccessRate, time.Second)
	}
	statsCache := deps.Cache
	if statsCache == nil {
		statsCache = cache.NewMemoryCache()
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	sessions := auth.NewSessionAccessor(tokens, cfg.Auth.CookieSecure)
	gate := auth.NewGate(sessions).OnDeny(deps.Metrics.RecordAuthDenial)
	routeGate, err := auth.NewRouteGate(sessions, domain.RoleAreas)
	if err != nil {
		return nil, fmt.Errorf("build route gate: %w", err)
	}

	authService := service.NewAuthService(cfg, deps.Repos.Users, tokens, dispatcher)
	staffService := service.NewStaffService(cfg, deps.Repos.Users, dispatcher)
	appointmentService := service.NewAppointmentService(deps.Repos, dispatcher, logger)
	clinicalService := service.NewClinicalService(deps.Repos, dispatcher, logger)
	catalogService := service.NewCatalogService(deps.Repos)
	statsService := service.NewStatsService(deps.Repos, statsCache, cfg.Stats.CacheTTL(), deps.Metrics, logger)
	healthCardService := service.NewHealthCardService(deps.Repos, cfg.HealthCard.QRBaseURL, dispatcher)
	paymentService := service.NewPaymentService(deps.Repos, gateway, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(dispatcher, notificationService, statsService)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, deps.Metrics, cfg.App.RequestTimeout())

	RegisterRoutes(app, RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps.Postgres, deps.Redis),
		Auth:         handlers.NewAuthHandler(authService, sessions),
		Appointments: handlers.NewAppointmentsHandler(appointmentService),
		Clinical:     handlers.NewClinicalHandler(clinicalService),
		Catalog:      handlers.NewCatalogHandler(catalogService),
		Staff:        handlers.NewStaffHandler(staffService, statsService),
		HealthCard:   handlers.NewHealthCardHandler(healthCardService),
		Payments:     handlers.NewPaymentsHandler(paymentService),
		Pages:        handlers.NewPagesHandler(),
		Gate:         gate,
		RouteGate:    routeGate,
		Metrics:      deps.Metrics,
	})
	return app, nil
}
