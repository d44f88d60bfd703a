package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/repository"
)

// MedicineRepository keeps the medicine inventory keyed by id.
type MedicineRepository struct {
	mu    sync.RWMutex
	clock *clock
	items map[string]domain.Medicine
}

func (r *MedicineRepository) Create(_ context.Context, m *domain.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.tick()
	m.ID = newID()
	m.CreatedAt = now
	m.UpdatedAt = now
	r.items[m.ID] = *m
	return nil
}

func (r *MedicineRepository) Update(_ context.Context, m *domain.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[m.ID]
	if !ok {
		return repository.ErrNotFound
	}
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = r.clock.tick()
	r.items[m.ID] = *m
	return nil
}

func (r *MedicineRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MedicineRepository) GetByID(_ context.Context, id string) (*domain.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *MedicineRepository) GetByName(_ context.Context, name string) (*domain.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.items {
		if m.Name == name {
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MedicineRepository) List(_ context.Context, filter repository.MedicineFilter) ([]domain.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var needle string
	if filter.Search != nil {
		needle = strings.ToLower(*filter.Search)
	}

	var result []domain.Medicine
	for _, m := range r.items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(m.Name), needle) &&
			!strings.Contains(strings.ToLower(m.GenericName), needle) {
			continue
		}
		if filter.Category != nil && *filter.Category != "" && m.Category != *filter.Category {
			continue
		}
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *MedicineRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// HospitalRepository keeps hospitals with a unique registration number.
type HospitalRepository struct {
	mu    sync.RWMutex
	clock *clock
	items []domain.Hospital
}

func (r *HospitalRepository) Create(_ context.Context, h *domain.Hospital) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.RegistrationNumber == h.RegistrationNumber {
			return repository.ErrDuplicate
		}
	}
	now := r.clock.tick()
	h.ID = newID()
	h.CreatedAt = now
	h.UpdatedAt = now
	r.items = append(r.items, *h)
	return nil
}

func (r *HospitalRepository) GetByRegistration(_ context.Context, registrationNumber string) (*domain.Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.items {
		if h.RegistrationNumber == registrationNumber {
			return &h, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *HospitalRepository) ListByStatus(_ context.Context, status domain.HospitalStatus) ([]domain.Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Hospital
	for _, h := range r.items {
		if h.Status == status {
			result = append(result, h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
