package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/events"
	"github.com/healthapp/healthcare-portal/internal/repository"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

// Repositories bundles every store a service may need.
type Repositories struct {
	Users          repository.UserRepository
	Appointments   repository.AppointmentRepository
	MedicalRecords repository.MedicalRecordRepository
	Prescriptions  repository.PrescriptionRepository
	Medicines      repository.MedicineRepository
	Hospitals      repository.HospitalRepository
	Payments       repository.PaymentRepository
	HealthCards    repository.HealthCardRepository
}

type publisher struct {
	dispatcher events.Dispatcher
	now        func() time.Time
}

func (p publisher) publish(ctx context.Context, eventType events.EventType, subjectID string, actor *domain.Principal, payload any) {
	if p.dispatcher == nil {
		return
	}
	now := time.Now
	if p.now != nil {
		now = p.now
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: now(),
		Payload:   payload,
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: actor.SubjectID, Role: actor.Role}
	}
	_ = p.dispatcher.Publish(ctx, event)
}

// validID reports whether id could name a stored row. Malformed ids are
// treated as "not found" rather than reaching the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func required(fields map[string]string) error {
	for _, v := range fields {
		if strings.TrimSpace(v) == "" {
			return apperrors.NewValidationError("Missing required fields", nil)
		}
	}
	return nil
}

// notFound translates a store miss into a named 404 and anything else into an internal error.
func notFound(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource)
	}
	return apperrors.MapError(err)
}

// referenceCode builds ids like TXN1700000000000A1B2C3D4E from a prefix, the
// current time in milliseconds and random uppercase characters.
func referenceCode(prefix string, now time.Time) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return fmt.Sprintf("%s%d%s", prefix, now.UnixMilli(), random)
}

// population resolves related users in one batch; a missing user yields nil.
type population struct {
	users repository.UserRepository
	log   *zap.Logger
}

func (p population) resolve(ctx context.Context, ids ...string) map[string]*domain.User {
	unique := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" || seen[id] || !validID(id) {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	found, err := p.users.GetByIDs(ctx, unique)
	if err != nil {
		if p.log != nil {
			p.log.Warn("populate users failed", zap.Error(err))
		}
		return map[string]*domain.User{}
	}
	return found
}
