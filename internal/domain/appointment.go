package domain

import "time"

// AppointmentStatus enumerates appointment lifecycle states.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no-show"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// PaymentState tracks whether an appointment has been paid for.
type PaymentState string

const (
	PaymentStateUnpaid PaymentState = "unpaid"
	PaymentStatePaid   PaymentState = "paid"
)

// Appointment books a patient with a doctor.
type Appointment struct {
	ID            string
	PatientID     string
	DoctorID      string
	Date          time.Time
	Time          string
	Status        AppointmentStatus
	Reason        string
	Notes         string
	PaymentStatus PaymentState
	PaymentID     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
