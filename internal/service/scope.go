package service

import (
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/repository"
)

// Scope narrows "my" listings to the caller. It is derived from the verified
// principal only; request parameters never widen it.
type Scope struct {
	PatientID *string
	DoctorID  *string
}

// ScopeFor returns the row scope for p: patients see their own rows, doctors
// the rows they authored, admins and pharmacists everything.
func ScopeFor(p *domain.Principal) Scope {
	id := p.SubjectID
	switch p.Role {
	case domain.RolePatient:
		return Scope{PatientID: &id}
	case domain.RoleDoctor:
		return Scope{DoctorID: &id}
	default:
		return Scope{}
	}
}

// Owns reports whether a row with the given participants falls inside the scope.
func (s Scope) Owns(patientID, doctorID string) bool {
	if s.PatientID != nil && *s.PatientID != patientID {
		return false
	}
	if s.DoctorID != nil && *s.DoctorID != doctorID {
		return false
	}
	return true
}

func (s Scope) clinical(limit int) repository.ClinicalFilter {
	return repository.ClinicalFilter{PatientID: s.PatientID, DoctorID: s.DoctorID, Limit: limit}
}
