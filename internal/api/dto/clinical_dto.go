package dto

import (
	"time"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// CreateRecordRequest payload. Symptoms may be a list or a comma-separated string.
type CreateRecordRequest struct {
	PatientID     string     `json:"patientId"`
	AppointmentID string     `json:"appointmentId"`
	Diagnosis     string     `json:"diagnosis"`
	Symptoms      StringList `json:"symptoms"`
	Treatment     string     `json:"treatment"`
	Prescriptions []string   `json:"prescriptions"`
	LabResults    string     `json:"labResults"`
	Notes         string     `json:"notes"`
}

// CreatePrescriptionRequest payload.
type CreatePrescriptionRequest struct {
	PatientID    string `json:"patientId"`
	MedicineID   string `json:"medicineId"`
	MedicineName string `json:"medicineName"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// RecordResponse is a medical record with optional populated participants.
type RecordResponse struct {
	ID            string       `json:"id"`
	PatientID     string       `json:"patientId"`
	DoctorID      string       `json:"doctorId"`
	AppointmentID *string      `json:"appointmentId,omitempty"`
	Diagnosis     string       `json:"diagnosis"`
	Symptoms      []string     `json:"symptoms"`
	Treatment     string       `json:"treatment"`
	Prescriptions []string     `json:"prescriptions"`
	LabResults    string       `json:"labResults,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	Patient       *UserSummary `json:"patient,omitempty"`
	Doctor        *UserSummary `json:"doctor,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// PrescriptionResponse is a prescription with optional populated references.
type PrescriptionResponse struct {
	ID           string                    `json:"id"`
	PatientID    string                    `json:"patientId"`
	DoctorID     string                    `json:"doctorId"`
	MedicineID   *string                   `json:"medicineId,omitempty"`
	MedicineName string                    `json:"medicineName"`
	Dosage       string                    `json:"dosage"`
	Frequency    string                    `json:"frequency"`
	Duration     string                    `json:"duration"`
	Instructions string                    `json:"instructions,omitempty"`
	Status       domain.PrescriptionStatus `json:"status"`
	Patient      *UserSummary              `json:"patient,omitempty"`
	Doctor       *UserSummary              `json:"doctor,omitempty"`
	Medicine     *MedicineResponse         `json:"medicine,omitempty"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

// NewRecordResponse maps a bare medical record.
func NewRecordResponse(r *domain.MedicalRecord) RecordResponse {
	return RecordResponse{
		ID:            r.ID,
		PatientID:     r.PatientID,
		DoctorID:      r.DoctorID,
		AppointmentID: r.AppointmentID,
		Diagnosis:     r.Diagnosis,
		Symptoms:      r.Symptoms,
		Treatment:     r.Treatment,
		Prescriptions: r.PrescriptionIDs,
		LabResults:    r.LabResults,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// NewRecordResponses maps bare medical records.
func NewRecordResponses(records []domain.MedicalRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for i := range records {
		out = append(out, NewRecordResponse(&records[i]))
	}
	return out
}

// NewRecordViews maps populated medical records.
func NewRecordViews(views []service.RecordView) []RecordResponse {
	out := make([]RecordResponse, 0, len(views))
	for i := range views {
		resp := NewRecordResponse(&views[i].MedicalRecord)
		resp.Patient = NewUserSummary(views[i].Patient)
		resp.Doctor = NewUserSummary(views[i].Doctor)
		out = append(out, resp)
	}
	return out
}

// NewPrescriptionResponse maps a bare prescription.
func NewPrescriptionResponse(rx *domain.Prescription) PrescriptionResponse {
	return PrescriptionResponse{
		ID:           rx.ID,
		PatientID:    rx.PatientID,
		DoctorID:     rx.DoctorID,
		MedicineID:   rx.MedicineID,
		MedicineName: rx.MedicineName,
		Dosage:       rx.Dosage,
		Frequency:    rx.Frequency,
		Duration:     rx.Duration,
		Instructions: rx.Instructions,
		Status:       rx.Status,
		CreatedAt:    rx.CreatedAt,
		UpdatedAt:    rx.UpdatedAt,
	}
}

// NewPrescriptionResponses maps bare prescriptions.
func NewPrescriptionResponses(prescriptions []domain.Prescription) []PrescriptionResponse {
	out := make([]PrescriptionResponse, 0, len(prescriptions))
	for i := range prescriptions {
		out = append(out, NewPrescriptionResponse(&prescriptions[i]))
	}
	return out
}

// NewPrescriptionViews maps populated prescriptions.
func NewPrescriptionViews(views []service.PrescriptionView) []PrescriptionResponse {
	out := make([]PrescriptionResponse, 0, len(views))
	for i := range views {
		resp := NewPrescriptionResponse(&views[i].Prescription)
		resp.Patient = NewUserSummary(views[i].Patient)
		resp.Doctor = NewUserSummary(views[i].Doctor)
		if views[i].Medicine != nil {
			medicine := NewMedicineResponse(views[i].Medicine)
			resp.Medicine = &medicine
		}
		out = append(out, resp)
	}
	return out
}
