package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/events"
	"github.com/healthapp/healthcare-portal/internal/repository"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

// AppointmentService coordinates booking and appointment lifecycle changes.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	users        repository.UserRepository
	populate     population
	events       publisher
}

// AppointmentView is an appointment with its participants resolved.
type AppointmentView struct {
	domain.Appointment
	Patient *domain.User
	Doctor  *domain.User
}

// BookInput describes a new appointment request.
type BookInput struct {
	DoctorID string
	Date     string
	Time     string
	Reason   string
	Notes    string
}

// AppointmentUpdate carries optional changes.
type AppointmentUpdate struct {
	Status *string
	Notes  *string
	Date   *string
	Time   *string
}

// NewAppointmentService constructs the service.
func NewAppointmentService(repos Repositories, dispatcher events.Dispatcher, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: repos.Appointments,
		users:        repos.Users,
		populate:     population{users: repos.Users, log: logger},
		events:       publisher{dispatcher: dispatcher},
	}
}

// List returns the caller's appointments, newest date first.
func (s *AppointmentService) List(ctx context.Context, p *domain.Principal, status string) ([]AppointmentView, error) {
	scope := ScopeFor(p)
	filter := repository.AppointmentFilter{PatientID: scope.PatientID, DoctorID: scope.DoctorID}
	if status != "" {
		st := domain.AppointmentStatus(status)
		filter.Status = &st
	}
	return s.list(ctx, filter)
}

// ListAll returns every appointment for the admin view.
func (s *AppointmentService) ListAll(ctx context.Context) ([]AppointmentView, error) {
	return s.list(ctx, repository.AppointmentFilter{})
}

func (s *AppointmentService) list(ctx context.Context, filter repository.AppointmentFilter) ([]AppointmentView, error) {
	appts, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.views(ctx, appts), nil
}

func (s *AppointmentService) views(ctx context.Context, appts []domain.Appointment) []AppointmentView {
	ids := make([]string, 0, len(appts)*2)
	for _, a := range appts {
		ids = append(ids, a.PatientID, a.DoctorID)
	}
	users := s.populate.resolve(ctx, ids...)

	views := make([]AppointmentView, 0, len(appts))
	for _, a := range appts {
		views = append(views, AppointmentView{Appointment: a, Patient: users[a.PatientID], Doctor: users[a.DoctorID]})
	}
	return views
}

// Book creates a scheduled appointment for the calling patient.
func (s *AppointmentService) Book(ctx context.Context, p *domain.Principal, in BookInput) (*domain.Appointment, error) {
	if err := required(map[string]string{"doctorId": in.DoctorID, "date": in.Date, "time": in.Time, "reason": in.Reason}); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if err := s.requireDoctor(ctx, in.DoctorID); err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		PatientID:     p.SubjectID,
		DoctorID:      in.DoctorID,
		Date:          date,
		Time:          strings.TrimSpace(in.Time),
		Status:        domain.AppointmentScheduled,
		Reason:        strings.TrimSpace(in.Reason),
		Notes:         in.Notes,
		PaymentStatus: domain.PaymentStateUnpaid,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.EventAppointmentBooked, appt.ID, p, appointmentPayload(appt))
	return appt, nil
}

// Update changes status, notes or schedule of an appointment the caller is party to.
func (s *AppointmentService) Update(ctx context.Context, p *domain.Principal, id string, in AppointmentUpdate) (*domain.Appointment, error) {
	appt, err := s.owned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && *in.Status != "" {
		status := domain.AppointmentStatus(*in.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidationError("Invalid status", map[string]any{"status": *in.Status})
		}
		appt.Status = status
	}
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}
	if in.Date != nil && *in.Date != "" {
		date, err := parseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		appt.Date = date
	}
	if in.Time != nil && *in.Time != "" {
		appt.Time = *in.Time
	}

	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, notFound(err, "Appointment")
	}

	eventType := events.EventAppointmentUpdated
	if appt.Status == domain.AppointmentCancelled {
		eventType = events.EventAppointmentCancelled
	}
	s.events.publish(ctx, eventType, appt.ID, p, appointmentPayload(appt))
	return appt, nil
}

// Delete removes an appointment the caller is party to.
func (s *AppointmentService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	appt, err := s.owned(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, appt.ID); err != nil {
		return notFound(err, "Appointment")
	}
	s.events.publish(ctx, events.EventAppointmentCancelled, appt.ID, p, appointmentPayload(appt))
	return nil
}

// owned loads id and hides appointments outside the caller's scope as missing.
func (s *AppointmentService) owned(ctx context.Context, p *domain.Principal, id string) (*domain.Appointment, error) {
	if !validID(id) {
		return nil, apperrors.NewNotFound("Appointment")
	}
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Appointment")
	}
	if !ScopeFor(p).Owns(appt.PatientID, appt.DoctorID) {
		return nil, apperrors.NewNotFound("Appointment")
	}
	return appt, nil
}

func (s *AppointmentService) requireDoctor(ctx context.Context, id string) error {
	if !validID(id) {
		return apperrors.NewNotFound("Doctor")
	}
	doctor, err := s.users.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Doctor")
	}
	if doctor.Role != domain.RoleDoctor {
		return apperrors.NewNotFound("Doctor")
	}
	return nil
}

func appointmentPayload(a *domain.Appointment) events.AppointmentPayload {
	return events.AppointmentPayload{
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Date:      a.Date,
		Time:      a.Time,
		Status:    a.Status,
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewValidationError("Invalid date", map[string]any{"date": raw})
}
