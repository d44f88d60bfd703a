package dto

import (
	"time"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// CreateAppointmentRequest payload.
type CreateAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
}

// UpdateAppointmentRequest payload; absent fields are left unchanged.
type UpdateAppointmentRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
	Date   *string `json:"date"`
	Time   *string `json:"time"`
}

// AppointmentResponse is an appointment with optional populated participants.
type AppointmentResponse struct {
	ID            string                   `json:"id"`
	PatientID     string                   `json:"patientId"`
	DoctorID      string                   `json:"doctorId"`
	Date          time.Time                `json:"date"`
	Time          string                   `json:"time"`
	Status        domain.AppointmentStatus `json:"status"`
	Reason        string                   `json:"reason"`
	Notes         string                   `json:"notes,omitempty"`
	PaymentStatus domain.PaymentState      `json:"paymentStatus"`
	PaymentID     *string                  `json:"paymentId,omitempty"`
	Patient       *UserSummary             `json:"patient,omitempty"`
	Doctor        *UserSummary             `json:"doctor,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

// NewAppointmentResponse maps a bare appointment.
func NewAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID,
		PatientID:     a.PatientID,
		DoctorID:      a.DoctorID,
		Date:          a.Date,
		Time:          a.Time,
		Status:        a.Status,
		Reason:        a.Reason,
		Notes:         a.Notes,
		PaymentStatus: a.PaymentStatus,
		PaymentID:     a.PaymentID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// NewAppointmentResponses maps bare appointments.
func NewAppointmentResponses(appts []domain.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, NewAppointmentResponse(&appts[i]))
	}
	return out
}

// NewAppointmentViews maps populated appointments.
func NewAppointmentViews(views []service.AppointmentView) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(views))
	for i := range views {
		resp := NewAppointmentResponse(&views[i].Appointment)
		resp.Patient = NewUserSummary(views[i].Patient)
		resp.Doctor = NewUserSummary(views[i].Doctor)
		out = append(out, resp)
	}
	return out
}
