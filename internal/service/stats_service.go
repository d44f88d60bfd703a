package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/healthapp/healthcare-portal/internal/cache"
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/events"
	"github.com/healthapp/healthcare-portal/internal/observability"
	"github.com/healthapp/healthcare-portal/internal/repository"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

const recentAppointmentsLimit = 10

var statsCacheKey = cache.Key("admin", "stats")

// Stats is the admin dashboard summary.
type Stats struct {
	TotalUsers           int64                `json:"totalUsers"`
	TotalAppointments    int64                `json:"totalAppointments"`
	TotalPrescriptions   int64                `json:"totalPrescriptions"`
	TotalRecords         int64                `json:"totalRecords"`
	UsersByRole          map[string]int64     `json:"usersByRole"`
	AppointmentsByStatus map[string]int64     `json:"appointmentsByStatus"`
	RecentAppointments   []domain.Appointment `json:"recentAppointments"`
}

// StatsService computes system statistics and keeps a short-lived cached copy.
type StatsService struct {
	repos   Repositories
	cache   cache.Cache
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewStatsService constructs the service. A zero ttl disables caching.
func NewStatsService(repos Repositories, c cache.Cache, ttl time.Duration, metrics *observability.Metrics, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repos: repos, cache: c, ttl: ttl, metrics: metrics, logger: logger}
}

// RegisterInvalidation drops the cached copy whenever counted data changes.
func (s *StatsService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil || s.cache == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventStaffCreated,
		events.EventAppointmentBooked,
		events.EventAppointmentUpdated,
		events.EventAppointmentCancelled,
		events.EventMedicalRecordCreated,
		events.EventPrescriptionIssued,
	} {
		dispatcher.Subscribe(eventType, func(ctx context.Context, _ events.Event) error {
			return s.cache.Delete(ctx, statsCacheKey)
		})
	}
}

// Get returns cached statistics when fresh, recomputing otherwise.
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil && s.ttl > 0 {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, s.ttl); err != nil {
				s.logger.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *StatsService) fromCache(ctx context.Context) (*Stats, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}
	payload, err := s.cache.Get(ctx, statsCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheLookup("admin_stats", false)
		return nil, false
	}
	var stats Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		s.metrics.RecordCacheLookup("admin_stats", false)
		return nil, false
	}
	s.metrics.RecordCacheLookup("admin_stats", true)
	return &stats, true
}

func (s *StatsService) compute(ctx context.Context) (*Stats, error) {
	var (
		stats Stats
		err   error
	)
	if stats.TotalUsers, err = s.repos.Users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalAppointments, err = s.repos.Appointments.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPrescriptions, err = s.repos.Prescriptions.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRecords, err = s.repos.MedicalRecords.Count(ctx); err != nil {
		return nil, err
	}
	if stats.UsersByRole, err = s.repos.Users.CountByRole(ctx); err != nil {
		return nil, err
	}
	if stats.AppointmentsByStatus, err = s.repos.Appointments.CountByStatus(ctx); err != nil {
		return nil, err
	}
	stats.RecentAppointments, err = s.repos.Appointments.List(ctx, repository.AppointmentFilter{
		RecentFirst: true,
		Limit:       recentAppointmentsLimit,
	})
	if err != nil {
		return nil, err
	}
	if stats.RecentAppointments == nil {
		stats.RecentAppointments = []domain.Appointment{}
	}
	return &stats, nil
}
