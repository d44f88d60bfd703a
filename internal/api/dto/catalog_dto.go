package dto

import (
	"time"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// MedicineRequest payload for creating or updating a medicine.
type MedicineRequest struct {
	Name         string     `json:"name"`
	GenericName  string     `json:"genericName"`
	Manufacturer string     `json:"manufacturer"`
	Category     string     `json:"category"`
	Price        *float64   `json:"price"`
	Stock        *int       `json:"stock"`
	Description  string     `json:"description"`
	SideEffects  StringList `json:"sideEffects"`
}

// MedicineResponse representation.
type MedicineResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	GenericName  string    `json:"genericName"`
	Manufacturer string    `json:"manufacturer"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	Description  string    `json:"description,omitempty"`
	SideEffects  []string  `json:"sideEffects"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OperatingHoursPayload is the daily opening window.
type OperatingHoursPayload struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// HospitalRequest payload for POST /hospitals.
type HospitalRequest struct {
	Name               string                 `json:"name"`
	Address            string                 `json:"address"`
	Phone              string                 `json:"phone"`
	Email              string                 `json:"email"`
	RegistrationNumber string                 `json:"registrationNumber"`
	Type               string                 `json:"type"`
	Departments        StringList             `json:"departments"`
	Facilities         StringList             `json:"facilities"`
	OperatingHours     *OperatingHoursPayload `json:"operatingHours"`
}

// HospitalResponse representation.
type HospitalResponse struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Address            string                `json:"address"`
	Phone              string                `json:"phone"`
	Email              string                `json:"email"`
	RegistrationNumber string                `json:"registrationNumber"`
	Type               domain.HospitalType   `json:"type"`
	Departments        []string              `json:"departments"`
	Facilities         []string              `json:"facilities"`
	OperatingHours     OperatingHoursPayload `json:"operatingHours"`
	Status             domain.HospitalStatus `json:"status"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// ProductResponse is one entry of the price list.
type ProductResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	PriceInCents int64                  `json:"priceInCents"`
	Category     domain.ProductCategory `json:"category"`
}

// NewMedicineResponse maps a medicine.
func NewMedicineResponse(m *domain.Medicine) MedicineResponse {
	return MedicineResponse{
		ID:           m.ID,
		Name:         m.Name,
		GenericName:  m.GenericName,
		Manufacturer: m.Manufacturer,
		Category:     m.Category,
		Price:        m.Price,
		Stock:        m.Stock,
		Description:  m.Description,
		SideEffects:  m.SideEffects,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// NewMedicineResponses maps a slice of medicines.
func NewMedicineResponses(medicines []domain.Medicine) []MedicineResponse {
	out := make([]MedicineResponse, 0, len(medicines))
	for i := range medicines {
		out = append(out, NewMedicineResponse(&medicines[i]))
	}
	return out
}

// NewHospitalResponse maps a hospital.
func NewHospitalResponse(h *domain.Hospital) HospitalResponse {
	return HospitalResponse{
		ID:                 h.ID,
		Name:               h.Name,
		Address:            h.Address,
		Phone:              h.Phone,
		Email:              h.Email,
		RegistrationNumber: h.RegistrationNumber,
		Type:               h.Type,
		Departments:        h.Departments,
		Facilities:         h.Facilities,
		OperatingHours:     OperatingHoursPayload{Open: h.OperatingHours.Open, Close: h.OperatingHours.Close},
		Status:             h.Status,
		CreatedAt:          h.CreatedAt,
		UpdatedAt:          h.UpdatedAt,
	}
}

// NewHospitalResponses maps a slice of hospitals.
func NewHospitalResponses(hospitals []domain.Hospital) []HospitalResponse {
	out := make([]HospitalResponse, 0, len(hospitals))
	for i := range hospitals {
		out = append(out, NewHospitalResponse(&hospitals[i]))
	}
	return out
}

// NewProductResponses maps the price list.
func NewProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			PriceInCents: p.PriceInCents,
			Category:     p.Category,
		})
	}
	return out
}
