package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func validMedicine() MedicineInput {
	return MedicineInput{
		Name:         "Cetirizine",
		GenericName:  "Cetirizine Hydrochloride",
		Manufacturer: "AllerCare",
		Category:     "Antihistamine",
		Price:        ptr(5.49),
		Stock:        ptr(120),
	}
}

func TestCatalogServiceCreateMedicineValidation(t *testing.T) {
	svc := NewCatalogService(newTestRepos())

	tests := []struct {
		name    string
		mutate  func(in *MedicineInput)
		message string
	}{
		{"missing name", func(in *MedicineInput) { in.Name = " " }, "Missing required fields"},
		{"missing category", func(in *MedicineInput) { in.Category = "" }, "Missing required fields"},
		{"missing price", func(in *MedicineInput) { in.Price = nil }, "Missing required fields"},
		{"zero price", func(in *MedicineInput) { in.Price = ptr(0.0) }, "Missing required fields"},
		{"missing stock", func(in *MedicineInput) { in.Stock = nil }, "Missing required fields"},
		{"negative stock", func(in *MedicineInput) { in.Stock = ptr(-1) }, "Stock cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validMedicine()
			tt.mutate(&in)
			_, err := svc.CreateMedicine(context.Background(), in)
			requireDomainError(t, err, http.StatusBadRequest, tt.message)
		})
	}

	m, err := svc.CreateMedicine(context.Background(), validMedicine())
	require.NoError(t, err)
	assert.Equal(t, 120, m.Stock)
	assert.Equal(t, []string{}, m.SideEffects)
}

func TestCatalogServiceUpdateAndDeleteMedicine(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(newTestRepos())
	m, err := svc.CreateMedicine(ctx, validMedicine())
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      string
		in      MedicineInput
		status  int
		message string
	}{
		{"negative price", m.ID, MedicineInput{Price: ptr(-2.0)}, http.StatusBadRequest, "Price cannot be negative"},
		{"negative stock", m.ID, MedicineInput{Stock: ptr(-5)}, http.StatusBadRequest, "Stock cannot be negative"},
		{"malformed id", "not-an-id", MedicineInput{Stock: ptr(5)}, http.StatusNotFound, "Medicine not found"},
		{"unknown id", "c0ffee00-0000-4000-8000-000000000000", MedicineInput{Stock: ptr(5)}, http.StatusNotFound, "Medicine not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateMedicine(ctx, tt.id, tt.in)
			requireDomainError(t, err, tt.status, tt.message)
		})
	}

	updated, err := svc.UpdateMedicine(ctx, m.ID, MedicineInput{Stock: ptr(0), Price: ptr(6.0)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, 6.0, updated.Price)
	assert.Equal(t, "Cetirizine", updated.Name)

	require.NoError(t, svc.DeleteMedicine(ctx, m.ID))
	requireDomainError(t, svc.DeleteMedicine(ctx, m.ID), http.StatusNotFound, "Medicine not found")
	requireDomainError(t, svc.DeleteMedicine(ctx, "bogus"), http.StatusNotFound, "Medicine not found")
}

func TestCatalogServiceHospitals(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := NewCatalogService(repos)

	base := HospitalInput{
		Name:               "St. Mary",
		Address:            "1 Main St",
		Phone:              "555-0101",
		Email:              "info@stmary.org",
		RegistrationNumber: "REG-1",
	}

	h, err := svc.CreateHospital(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, domain.HospitalPrivate, h.Type)
	assert.Equal(t, domain.OperatingHours{Open: "09:00", Close: "17:00"}, h.OperatingHours)
	assert.Equal(t, domain.HospitalActive, h.Status)
	assert.Equal(t, []string{}, h.Departments)

	tests := []struct {
		name    string
		mutate  func(in *HospitalInput)
		status  int
		message string
	}{
		{"missing address", func(in *HospitalInput) { in.Address = "" }, http.StatusBadRequest, "Missing required fields"},
		{"unknown type", func(in *HospitalInput) { in.Type = "spa" }, http.StatusBadRequest, "Invalid hospital type"},
		{"duplicate registration", func(in *HospitalInput) {}, http.StatusConflict, "Hospital already registered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := svc.CreateHospital(ctx, in)
			requireDomainError(t, err, tt.status, tt.message)
		})
	}

	clinic := base
	clinic.RegistrationNumber = "REG-2"
	clinic.Type = "clinic"
	clinic.OperatingHours = &domain.OperatingHours{Open: "07:00", Close: "19:00"}
	created, err := svc.CreateHospital(ctx, clinic)
	require.NoError(t, err)
	assert.Equal(t, domain.HospitalClinic, created.Type)
	assert.Equal(t, "07:00", created.OperatingHours.Open)

	require.NoError(t, repos.Hospitals.Create(ctx, &domain.Hospital{
		Name: "Closed", RegistrationNumber: "REG-3", Status: domain.HospitalInactive,
	}))

	listed, err := svc.ListHospitals(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, hospital := range listed {
		assert.Equal(t, domain.HospitalActive, hospital.Status)
	}
}
