package domain

import "time"

// MedicalRecord is a doctor's diagnosis entry for a patient.
type MedicalRecord struct {
	ID              string
	PatientID       string
	DoctorID        string
	AppointmentID   *string
	Diagnosis       string
	Symptoms        []string
	Treatment       string
	PrescriptionIDs []string
	LabResults      string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
