// Package memory provides in-process repository implementations used when no
// Postgres DSN is configured and throughout the test suites.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/repository"
)

// Store bundles one in-memory repository per entity behind a shared clock.
type Store struct {
	Users          *UserRepository
	Appointments   *AppointmentRepository
	MedicalRecords *MedicalRecordRepository
	Prescriptions  *PrescriptionRepository
	Medicines      *MedicineRepository
	Hospitals      *HospitalRepository
	Payments       *PaymentRepository
	HealthCards    *HealthCardRepository
}

// NewStore returns an empty store.
func NewStore() *Store {
	clk := &clock{now: time.Now}
	return &Store{
		Users:          &UserRepository{clock: clk, items: map[string]domain.User{}},
		Appointments:   &AppointmentRepository{clock: clk, items: map[string]domain.Appointment{}},
		MedicalRecords: &MedicalRecordRepository{clock: clk},
		Prescriptions:  &PrescriptionRepository{clock: clk},
		Medicines:      &MedicineRepository{clock: clk, items: map[string]domain.Medicine{}},
		Hospitals:      &HospitalRepository{clock: clk},
		Payments:       &PaymentRepository{clock: clk},
		HealthCards:    &HealthCardRepository{clock: clk, items: map[string]domain.HealthCard{}},
	}
}

// clock hands out strictly increasing timestamps so newest-first ordering is stable.
type clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func (c *clock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now().UTC()
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

func newID() string {
	return uuid.NewString()
}

var (
	_ repository.UserRepository          = (*UserRepository)(nil)
	_ repository.AppointmentRepository   = (*AppointmentRepository)(nil)
	_ repository.MedicalRecordRepository = (*MedicalRecordRepository)(nil)
	_ repository.PrescriptionRepository  = (*PrescriptionRepository)(nil)
	_ repository.MedicineRepository      = (*MedicineRepository)(nil)
	_ repository.HospitalRepository      = (*HospitalRepository)(nil)
	_ repository.PaymentRepository       = (*PaymentRepository)(nil)
	_ repository.HealthCardRepository    = (*HealthCardRepository)(nil)
)
