package domain

import "time"

// EmergencyContact is printed on a health card.
type EmergencyContact struct {
	Name         string
	Phone        string
	Relationship string
}

// HealthCard is the patient's scannable identity card.
type HealthCard struct {
	ID                string
	PatientID         string
	CardNumber        string
	QRCode            string
	BloodGroup        string
	Allergies         []string
	EmergencyContact  *EmergencyContact
	MedicalConditions []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
