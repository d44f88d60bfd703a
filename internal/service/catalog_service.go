package service

import (
	"context"
	"errors"
	"strings"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/repository"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

// CatalogService manages the medicine inventory, hospitals and the product price list.
type CatalogService struct {
	medicines repository.MedicineRepository
	hospitals repository.HospitalRepository
}

// MedicineInput carries medicine fields; nil pointers mean "not supplied".
type MedicineInput struct {
	Name         string
	GenericName  string
	Manufacturer string
	Category     string
	Price        *float64
	Stock        *int
	Description  string
	SideEffects  []string
}

// HospitalInput describes a hospital to register.
type HospitalInput struct {
	Name               string
	Address            string
	Phone              string
	Email              string
	RegistrationNumber string
	Type               string
	Departments        []string
	Facilities         []string
	OperatingHours     *domain.OperatingHours
}

// DefaultOperatingHours applies when a hospital is registered without hours.
var DefaultOperatingHours = domain.OperatingHours{Open: "09:00", Close: "17:00"}

// NewCatalogService constructs the service.
func NewCatalogService(repos Repositories) *CatalogService {
	return &CatalogService{medicines: repos.Medicines, hospitals: repos.Hospitals}
}

// ListMedicines searches name and generic name case-insensitively, optionally by category.
func (s *CatalogService) ListMedicines(ctx context.Context, search, category string) ([]domain.Medicine, error) {
	filter := repository.MedicineFilter{}
	if search != "" {
		filter.Search = &search
	}
	if category != "" {
		filter.Category = &category
	}
	medicines, err := s.medicines.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return medicines, nil
}

// CreateMedicine adds an inventory item.
func (s *CatalogService) CreateMedicine(ctx context.Context, in MedicineInput) (*domain.Medicine, error) {
	if err := required(map[string]string{
		"name":         in.Name,
		"genericName":  in.GenericName,
		"manufacturer": in.Manufacturer,
		"category":     in.Category,
	}); err != nil {
		return nil, err
	}
	if in.Price == nil || *in.Price <= 0 || in.Stock == nil {
		return nil, apperrors.NewValidationError("Missing required fields", nil)
	}
	if *in.Stock < 0 {
		return nil, apperrors.NewValidationError("Stock cannot be negative", nil)
	}

	m := &domain.Medicine{
		Name:         strings.TrimSpace(in.Name),
		GenericName:  strings.TrimSpace(in.GenericName),
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		Category:     strings.TrimSpace(in.Category),
		Price:        *in.Price,
		Stock:        *in.Stock,
		Description:  in.Description,
		SideEffects:  in.SideEffects,
	}
	if m.SideEffects == nil {
		m.SideEffects = []string{}
	}
	if err := s.medicines.Create(ctx, m); err != nil {
		return nil, apperrors.MapError(err)
	}
	return m, nil
}

// UpdateMedicine applies the supplied fields.
func (s *CatalogService) UpdateMedicine(ctx context.Context, id string, in MedicineInput) (*domain.Medicine, error) {
	if !validID(id) {
		return nil, apperrors.NewNotFound("Medicine")
	}
	m, err := s.medicines.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Medicine")
	}

	setIf(&m.Name, in.Name)
	setIf(&m.GenericName, in.GenericName)
	setIf(&m.Manufacturer, in.Manufacturer)
	setIf(&m.Category, in.Category)
	setIf(&m.Description, in.Description)
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, apperrors.NewValidationError("Price cannot be negative", nil)
		}
		m.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, apperrors.NewValidationError("Stock cannot be negative", nil)
		}
		m.Stock = *in.Stock
	}
	if in.SideEffects != nil {
		m.SideEffects = in.SideEffects
	}

	if err := s.medicines.Update(ctx, m); err != nil {
		return nil, notFound(err, "Medicine")
	}
	return m, nil
}

// DeleteMedicine removes an inventory item.
func (s *CatalogService) DeleteMedicine(ctx context.Context, id string) error {
	if !validID(id) {
		return apperrors.NewNotFound("Medicine")
	}
	if err := s.medicines.Delete(ctx, id); err != nil {
		return notFound(err, "Medicine")
	}
	return nil
}

// ListHospitals returns active hospitals.
func (s *CatalogService) ListHospitals(ctx context.Context) ([]domain.Hospital, error) {
	hospitals, err := s.hospitals.ListByStatus(ctx, domain.HospitalActive)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return hospitals, nil
}

// CreateHospital registers an active hospital.
func (s *CatalogService) CreateHospital(ctx context.Context, in HospitalInput) (*domain.Hospital, error) {
	if err := required(map[string]string{
		"name":               in.Name,
		"address":            in.Address,
		"phone":              in.Phone,
		"email":              in.Email,
		"registrationNumber": in.RegistrationNumber,
	}); err != nil {
		return nil, err
	}

	hospitalType := domain.HospitalPrivate
	if in.Type != "" {
		hospitalType = domain.HospitalType(in.Type)
		switch hospitalType {
		case domain.HospitalGovernment, domain.HospitalPrivate, domain.HospitalClinic:
		default:
			return nil, apperrors.NewValidationError("Invalid hospital type", map[string]any{"type": in.Type})
		}
	}

	h := &domain.Hospital{
		Name:               strings.TrimSpace(in.Name),
		Address:            in.Address,
		Phone:              in.Phone,
		Email:              in.Email,
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
		Type:               hospitalType,
		Departments:        nonNil(in.Departments),
		Facilities:         nonNil(in.Facilities),
		OperatingHours:     DefaultOperatingHours,
		Status:             domain.HospitalActive,
	}
	if in.OperatingHours != nil {
		h.OperatingHours = *in.OperatingHours
	}

	if err := s.hospitals.Create(ctx, h); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Hospital already registered", map[string]any{"registrationNumber": h.RegistrationNumber})
		}
		return nil, apperrors.MapError(err)
	}
	return h, nil
}

// Products returns the static price list.
func (s *CatalogService) Products() []domain.Product {
	return domain.Products
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
