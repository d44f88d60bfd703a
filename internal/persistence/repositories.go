package persistence

import (
	"github.com/healthapp/healthcare-portal/internal/repository"
	"github.com/healthapp/healthcare-portal/internal/repository/memory"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// Repositories returns Postgres-backed stores, or a fresh in-memory store
// when no pool is configured.
func (p *Postgres) Repositories() service.Repositories {
	pool := p.PoolHandle()
	if pool == nil {
		return MemoryRepositories(memory.NewStore())
	}
	return service.Repositories{
		Users:          repository.NewUserRepository(pool),
		Appointments:   repository.NewAppointmentRepository(pool),
		MedicalRecords: repository.NewMedicalRecordRepository(pool),
		Prescriptions:  repository.NewPrescriptionRepository(pool),
		Medicines:      repository.NewMedicineRepository(pool),
		Hospitals:      repository.NewHospitalRepository(pool),
		Payments:       repository.NewPaymentRepository(pool),
		HealthCards:    repository.NewHealthCardRepository(pool),
	}
}

// MemoryRepositories exposes an in-memory store through the service contracts.
func MemoryRepositories(store *memory.Store) service.Repositories {
	return service.Repositories{
		Users:          store.Users,
		Appointments:   store.Appointments,
		MedicalRecords: store.MedicalRecords,
		Prescriptions:  store.Prescriptions,
		Medicines:      store.Medicines,
		Hospitals:      store.Hospitals,
		Payments:       store.Payments,
		HealthCards:    store.HealthCards,
	}
}
