package events

import (
	"time"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventStaffCreated         EventType = "staff_created"
	EventAppointmentBooked    EventType = "appointment_booked"
	EventAppointmentUpdated   EventType = "appointment_updated"
	EventAppointmentCancelled EventType = "appointment_cancelled"
	EventMedicalRecordCreated EventType = "medical_record_created"
	EventPrescriptionIssued   EventType = "prescription_issued"
	EventPaymentRecorded      EventType = "payment_recorded"
	EventHealthCardScanned    EventType = "health_card_scanned"
)

// Actor identifies who caused an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AppointmentPayload describes a booked or changed appointment.
type AppointmentPayload struct {
	PatientID string                   `json:"patient_id"`
	DoctorID  string                   `json:"doctor_id"`
	Date      time.Time                `json:"date"`
	Time      string                   `json:"time"`
	Status    domain.AppointmentStatus `json:"status"`
}

// ClinicalPayload describes a new record or prescription for a patient.
type ClinicalPayload struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Summary   string `json:"summary"`
}

// PaymentPayload describes a recorded payment.
type PaymentPayload struct {
	AppointmentID *string              `json:"appointment_id,omitempty"`
	Amount        float64              `json:"amount"`
	Status        domain.PaymentStatus `json:"status"`
	TransactionID string               `json:"transaction_id"`
}

// AccountPayload describes a created account.
type AccountPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}
