package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/repository"
)

// AppointmentRepository keeps appointments keyed by id.
type AppointmentRepository struct {
	mu    sync.RWMutex
	clock *clock
	items map[string]domain.Appointment
}

func (r *AppointmentRepository) Create(_ context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.tick()
	appt.ID = newID()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	r.items[appt.ID] = *appt
	return nil
}

func (r *AppointmentRepository) Update(_ context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[appt.ID]
	if !ok {
		return repository.ErrNotFound
	}
	appt.PatientID = existing.PatientID
	appt.DoctorID = existing.DoctorID
	appt.CreatedAt = existing.CreatedAt
	appt.UpdatedAt = r.clock.tick()
	r.items[appt.ID] = *appt
	return nil
}

func (r *AppointmentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &appt, nil
}

func (r *AppointmentRepository) List(_ context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Appointment
	for _, appt := range r.items {
		if filter.PatientID != nil && appt.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && appt.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != nil && appt.Status != *filter.Status {
			continue
		}
		result = append(result, appt)
	}

	sort.Slice(result, func(i, j int) bool {
		if filter.RecentFirst || result[i].Date.Equal(result[j].Date) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].Date.After(result[j].Date)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *AppointmentRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *AppointmentRepository) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := map[string]int64{}
	for _, appt := range r.items {
		result[string(appt.Status)]++
	}
	return result, nil
}

func (r *AppointmentRepository) MarkPaid(_ context.Context, id, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	appt.PaymentStatus = domain.PaymentStatePaid
	appt.PaymentID = &paymentID
	appt.UpdatedAt = r.clock.tick()
	r.items[id] = appt
	return nil
}
