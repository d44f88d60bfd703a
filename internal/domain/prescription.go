package domain

import "time"

// PrescriptionStatus enumerates prescription states.
type PrescriptionStatus string

const (
	PrescriptionActive    PrescriptionStatus = "active"
	PrescriptionCompleted PrescriptionStatus = "completed"
	PrescriptionCancelled PrescriptionStatus = "cancelled"
)

// Prescription is a medicine order issued by a doctor for a patient.
type Prescription struct {
	ID           string
	PatientID    string
	DoctorID     string
	MedicineID   *string
	MedicineName string
	Dosage       string
	Frequency    string
	Duration     string
	Instructions string
	Status       PrescriptionStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
