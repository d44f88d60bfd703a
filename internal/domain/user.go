package domain

import "time"

// Gender captures the self-reported gender of a user.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User is the credential record shared by every role.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	Role             Role
	Name             string
	Phone            string
	DateOfBirth      string
	Gender           Gender
	Address          string
	ProfileImage     string
	Specialization   string
	LicenseNumber    string
	Department       string
	HospitalID       *string
	Allergies        string
	BloodGroup       string
	MedicalHistory   string
	EmergencyContact string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
