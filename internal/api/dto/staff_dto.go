package dto

// StaffCreateRequest payload for POST /admin/staff.
type StaffCreateRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender"`
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"licenseNumber"`
	Department     string `json:"department"`
	HospitalID     string `json:"hospitalId"`
}
