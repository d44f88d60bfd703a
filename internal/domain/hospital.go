package domain

import "time"

// HospitalType classifies a hospital.
type HospitalType string

const (
	HospitalGovernment HospitalType = "government"
	HospitalPrivate    HospitalType = "private"
	HospitalClinic     HospitalType = "clinic"
)

// HospitalStatus marks whether a hospital is listed.
type HospitalStatus string

const (
	HospitalActive   HospitalStatus = "active"
	HospitalInactive HospitalStatus = "inactive"
)

// OperatingHours is the daily opening window in HH:MM.
type OperatingHours struct {
	Open  string
	Close string
}

// Hospital groups staff and facilities.
type Hospital struct {
	ID                 string
	Name               string
	Address            string
	Phone              string
	Email              string
	RegistrationNumber string
	Type               HospitalType
	Departments        []string
	Facilities         []string
	OperatingHours     OperatingHours
	Status             HospitalStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
