package dto

import (
	"time"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// RegisterRequest payload for self-registration.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest payload for PUT /profile.
type ProfileUpdateRequest struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	DateOfBirth      string `json:"dateOfBirth"`
	Gender           string `json:"gender"`
	Address          string `json:"address"`
	Specialization   string `json:"specialization"`
	Department       string `json:"department"`
	Allergies        string `json:"allergies"`
	BloodGroup       string `json:"bloodGroup"`
	MedicalHistory   string `json:"medicalHistory"`
	EmergencyContact string `json:"emergencyContact"`
	CurrentPassword  string `json:"currentPassword"`
	NewPassword      string `json:"newPassword"`
}

// SessionUser is the identity returned by login, register and me.
type SessionUser struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

// UserResponse is the full account view. It never carries the password hash.
type UserResponse struct {
	ID               string        `json:"id"`
	Email            string        `json:"email"`
	Name             string        `json:"name"`
	Role             domain.Role   `json:"role"`
	Phone            string        `json:"phone,omitempty"`
	DateOfBirth      string        `json:"dateOfBirth,omitempty"`
	Gender           domain.Gender `json:"gender,omitempty"`
	Address          string        `json:"address,omitempty"`
	ProfileImage     string        `json:"profileImage,omitempty"`
	Specialization   string        `json:"specialization,omitempty"`
	LicenseNumber    string        `json:"licenseNumber,omitempty"`
	Department       string        `json:"department,omitempty"`
	HospitalID       *string       `json:"hospitalId,omitempty"`
	Allergies        string        `json:"allergies,omitempty"`
	BloodGroup       string        `json:"bloodGroup,omitempty"`
	MedicalHistory   string        `json:"medicalHistory,omitempty"`
	EmergencyContact string        `json:"emergencyContact,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// UserSummary is the populated form of a related user.
type UserSummary struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Role           domain.Role `json:"role"`
	Phone          string      `json:"phone,omitempty"`
	Specialization string      `json:"specialization,omitempty"`
	Department     string      `json:"department,omitempty"`
}

// NewSessionUser maps the identity fields of u.
func NewSessionUser(u *domain.User) SessionUser {
	return SessionUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// NewUserResponse maps u without its credentials.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Role:             u.Role,
		Phone:            u.Phone,
		DateOfBirth:      u.DateOfBirth,
		Gender:           u.Gender,
		Address:          u.Address,
		ProfileImage:     u.ProfileImage,
		Specialization:   u.Specialization,
		LicenseNumber:    u.LicenseNumber,
		Department:       u.Department,
		HospitalID:       u.HospitalID,
		Allergies:        u.Allergies,
		BloodGroup:       u.BloodGroup,
		MedicalHistory:   u.MedicalHistory,
		EmergencyContact: u.EmergencyContact,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// NewUserResponses maps a slice of users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// NewUserSummary maps a populated user; a missing user stays nil.
func NewUserSummary(u *domain.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Phone:          u.Phone,
		Specialization: u.Specialization,
		Department:     u.Department,
	}
}
