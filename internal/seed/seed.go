// Package seed loads the default hospital, administrator and medicine catalogue.
package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/healthapp/healthcare-portal/internal/auth"
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/repository"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// Default administrator credentials. Change the password after first login.
const (
	AdminEmail    = "admin@healthcare.com"
	AdminPassword = "Admin@123456"
)

// DefaultHospital is created alongside the administrator.
var DefaultHospital = domain.Hospital{
	Name:               "Central Healthcare Hospital",
	Address:            "123 Medical Center Drive, Healthcare City",
	Phone:              "+1-555-0100",
	Email:              "info@centralhealthcare.com",
	RegistrationNumber: "HOS-2024-001",
	Type:               domain.HospitalPrivate,
	Departments:        []string{"Cardiology", "Neurology", "Orthopedics", "Pediatrics", "General Medicine", "Emergency", "Surgery"},
	Facilities:         []string{"ICU", "Emergency Room", "Laboratory", "Radiology", "Pharmacy", "Blood Bank"},
	OperatingHours:     domain.OperatingHours{Open: "00:00", Close: "23:59"},
	Status:             domain.HospitalActive,
}

// Medicines is the starter inventory.
var Medicines = []domain.Medicine{
	{
		Name:         "Amoxicillin",
		GenericName:  "Amoxicillin",
		Manufacturer: "PharmaCorp",
		Category:     "Antibiotic",
		Price:        12.99,
		Stock:        150,
		Description:  "Broad-spectrum antibiotic used to treat bacterial infections",
		SideEffects:  []string{"Nausea", "Diarrhea", "Rash"},
	},
	{
		Name:         "Ibuprofen",
		GenericName:  "Ibuprofen",
		Manufacturer: "MediHealth",
		Category:     "Painkiller",
		Price:        8.99,
		Stock:        200,
		Description:  "Nonsteroidal anti-inflammatory drug for pain relief",
		SideEffects:  []string{"Stomach upset", "Dizziness", "Headache"},
	},
	{
		Name:         "Vitamin D3",
		GenericName:  "Cholecalciferol",
		Manufacturer: "VitaLife",
		Category:     "Vitamin",
		Price:        15.99,
		Stock:        100,
		Description:  "Essential vitamin for bone health and immune function",
		SideEffects:  []string{"Rare: Nausea", "Constipation"},
	},
	{
		Name:         "Omeprazole",
		GenericName:  "Omeprazole",
		Manufacturer: "GastroMed",
		Category:     "Antacid",
		Price:        18.99,
		Stock:        80,
		Description:  "Proton pump inhibitor for acid reflux and heartburn",
		SideEffects:  []string{"Headache", "Stomach pain", "Diarrhea"},
	},
	{
		Name:         "Cetirizine",
		GenericName:  "Cetirizine HCl",
		Manufacturer: "AllergyFree",
		Category:     "Antihistamine",
		Price:        10.99,
		Stock:        120,
		Description:  "Antihistamine for allergy relief",
		SideEffects:  []string{"Drowsiness", "Dry mouth", "Fatigue"},
	},
}

// Seeder writes seed data through the repositories.
type Seeder struct {
	repos      service.Repositories
	bcryptCost int
	logger     *zap.Logger
}

// New constructs a seeder.
func New(repos service.Repositories, bcryptCost int, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{repos: repos, bcryptCost: bcryptCost, logger: logger}
}

// Admin creates the default hospital and administrator. It reports false
// when the administrator already exists.
func (s *Seeder) Admin(ctx context.Context) (bool, error) {
	if _, err := s.repos.Users.GetByEmail(ctx, AdminEmail); err == nil {
		s.logger.Info("admin already exists", zap.String("email", AdminEmail))
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	hospital, err := s.hospital(ctx)
	if err != nil {
		return false, err
	}

	hash, err := auth.HashPassword(AdminPassword, s.bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	admin := &domain.User{
		Email:        AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Name:         "System Administrator",
		Phone:        "+1-555-0100",
		HospitalID:   &hospital.ID,
	}
	if err := s.repos.Users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	s.logger.Info("admin created", zap.String("email", AdminEmail), zap.String("hospital_id", hospital.ID))
	return true, nil
}

func (s *Seeder) hospital(ctx context.Context) (*domain.Hospital, error) {
	existing, err := s.repos.Hospitals.GetByRegistration(ctx, DefaultHospital.RegistrationNumber)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup hospital: %w", err)
	}

	hospital := DefaultHospital
	hospital.Departments = append([]string(nil), DefaultHospital.Departments...)
	hospital.Facilities = append([]string(nil), DefaultHospital.Facilities...)
	if err := s.repos.Hospitals.Create(ctx, &hospital); err != nil {
		return nil, fmt.Errorf("create hospital: %w", err)
	}
	s.logger.Info("hospital created", zap.String("name", hospital.Name))
	return &hospital, nil
}

// Medicines inserts catalogue entries that are not stored yet and returns
// how many were added.
func (s *Seeder) Medicines(ctx context.Context) (int, error) {
	added := 0
	for _, m := range Medicines {
		if _, err := s.repos.Medicines.GetByName(ctx, m.Name); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return added, fmt.Errorf("lookup medicine %q: %w", m.Name, err)
		}
		medicine := m
		medicine.SideEffects = append([]string(nil), m.SideEffects...)
		if err := s.repos.Medicines.Create(ctx, &medicine); err != nil {
			return added, fmt.Errorf("create medicine %q: %w", m.Name, err)
		}
		added++
	}
	s.logger.Info("medicines seeded", zap.Int("added", added))
	return added, nil
}
