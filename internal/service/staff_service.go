package service

import (
	"context"
	"strings"

	"github.com/healthapp/healthcare-portal/internal/config"
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/events"
	"github.com/healthapp/healthcare-portal/internal/repository"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

// StaffService lets administrators provision doctors and pharmacists.
type StaffService struct {
	users      repository.UserRepository
	bcryptCost int
	events     publisher
}

// StaffInput describes a staff account to create.
type StaffInput struct {
	Email          string
	Password       string
	Name           string
	Role           string
	Phone          string
	DateOfBirth    string
	Gender         string
	Specialization string
	LicenseNumber  string
	Department     string
	HospitalID     string
}

var staffRoles = []domain.Role{domain.RoleDoctor, domain.RolePharmacist}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *StaffService {
	return &StaffService{
		users:      users,
		bcryptCost: cfg.Auth.BcryptCost,
		events:     publisher{dispatcher: dispatcher},
	}
}

// CreateStaff creates a doctor or pharmacist account.
func (s *StaffService) CreateStaff(ctx context.Context, actor *domain.Principal, in StaffInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if err := required(map[string]string{"email": email, "password": in.Password, "name": in.Name, "role": in.Role}); err != nil {
		return nil, err
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok || (role != domain.RoleDoctor && role != domain.RolePharmacist) {
		return nil, apperrors.NewValidationError("Invalid role. Only doctor and pharmacist allowed", map[string]any{"role": in.Role})
	}

	user := &domain.User{
		Email:          email,
		Role:           role,
		Name:           strings.TrimSpace(in.Name),
		Phone:          in.Phone,
		DateOfBirth:    in.DateOfBirth,
		Gender:         domain.Gender(in.Gender),
		Specialization: in.Specialization,
		LicenseNumber:  in.LicenseNumber,
		Department:     in.Department,
	}
	if in.HospitalID != "" {
		if !validID(in.HospitalID) {
			return nil, apperrors.NewValidationError("Invalid hospital id", map[string]any{"hospitalId": in.HospitalID})
		}
		hospitalID := in.HospitalID
		user.HospitalID = &hospitalID
	}

	created, err := createAccount(ctx, s.users, s.bcryptCost, user, in.Password)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.EventStaffCreated, created.ID, actor, events.AccountPayload{Email: created.Email, Role: created.Role})
	return created, nil
}

// ListStaff returns every doctor and pharmacist.
func (s *StaffService) ListStaff(ctx context.Context) ([]domain.User, error) {
	staff, err := s.users.List(ctx, repository.UserFilter{Roles: staffRoles})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// ListPatients is the doctor-facing patient directory.
func (s *StaffService) ListPatients(ctx context.Context) ([]domain.User, error) {
	patients, err := s.users.List(ctx, repository.UserFilter{Roles: []domain.Role{domain.RolePatient}})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return patients, nil
}

// ListDoctors returns doctors, optionally limited to one department.
func (s *StaffService) ListDoctors(ctx context.Context, department string) ([]domain.User, error) {
	filter := repository.UserFilter{Roles: []domain.Role{domain.RoleDoctor}}
	if department != "" {
		filter.Department = &department
	}
	doctors, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return doctors, nil
}
