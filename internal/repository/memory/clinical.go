package memory

import (
	"context"
	"sync"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/repository"
)

func matchesClinical(filter repository.ClinicalFilter, patientID, doctorID string) bool {
	if filter.PatientID != nil && patientID != *filter.PatientID {
		return false
	}
	if filter.DoctorID != nil && doctorID != *filter.DoctorID {
		return false
	}
	return true
}

// MedicalRecordRepository appends records in creation order.
type MedicalRecordRepository struct {
	mu    sync.RWMutex
	clock *clock
	items []domain.MedicalRecord
}

func (r *MedicalRecordRepository) Create(_ context.Context, record *domain.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.tick()
	record.ID = newID()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.items = append(r.items, *record)
	return nil
}

func (r *MedicalRecordRepository) List(_ context.Context, filter repository.ClinicalFilter) ([]domain.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.MedicalRecord
	for i := len(r.items) - 1; i >= 0; i-- {
		record := r.items[i]
		if !matchesClinical(filter, record.PatientID, record.DoctorID) {
			continue
		}
		result = append(result, record)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (r *MedicalRecordRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// PrescriptionRepository appends prescriptions in creation order.
type PrescriptionRepository struct {
	mu    sync.RWMutex
	clock *clock
	items []domain.Prescription
}

func (r *PrescriptionRepository) Create(_ context.Context, p *domain.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.tick()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.items = append(r.items, *p)
	return nil
}

func (r *PrescriptionRepository) List(_ context.Context, filter repository.ClinicalFilter) ([]domain.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Prescription
	for i := len(r.items) - 1; i >= 0; i-- {
		p := r.items[i]
		if !matchesClinical(filter, p.PatientID, p.DoctorID) {
			continue
		}
		result = append(result, p)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (r *PrescriptionRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}
