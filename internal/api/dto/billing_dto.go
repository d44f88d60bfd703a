package dto

import (
	"time"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// PaymentRequest payload for POST /payments and /payments/process. Card
// fields are accepted for the gateway and never stored.
type PaymentRequest struct {
	AppointmentID string  `json:"appointmentId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	CardNumber    string  `json:"cardNumber"`
	CardExpiry    string  `json:"cardExpiry"`
	CVV           string  `json:"cvv"`
}

// PaymentResponse representation.
type PaymentResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"userId"`
	AppointmentID *string              `json:"appointmentId,omitempty"`
	Amount        float64              `json:"amount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Status        domain.PaymentStatus `json:"status"`
	TransactionID string               `json:"transactionId"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// EmergencyContactPayload is the card's emergency contact.
type EmergencyContactPayload struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// HealthCardUpdateRequest payload for PATCH /health-card.
type HealthCardUpdateRequest struct {
	BloodGroup        string                   `json:"bloodGroup"`
	Allergies         StringList               `json:"allergies"`
	EmergencyContact  *EmergencyContactPayload `json:"emergencyContact"`
	MedicalConditions StringList               `json:"medicalConditions"`
}

// ScanRequest payload for POST /health-card/scan. QRData carries the raw
// decoded QR text when the card number is not typed in.
type ScanRequest struct {
	CardNumber string `json:"cardNumber"`
	QRData     string `json:"qrData"`
}

// HealthCardResponse representation.
type HealthCardResponse struct {
	ID                string                   `json:"id"`
	PatientID         string                   `json:"patientId"`
	CardNumber        string                   `json:"cardNumber"`
	QRCode            string                   `json:"qrCode"`
	BloodGroup        string                   `json:"bloodGroup,omitempty"`
	Allergies         []string                 `json:"allergies"`
	EmergencyContact  *EmergencyContactPayload `json:"emergencyContact,omitempty"`
	MedicalConditions []string                 `json:"medicalConditions"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

// ScanResponse is the doctor's view of a scanned card.
type ScanResponse struct {
	Patient        UserResponse           `json:"patient"`
	HealthCard     HealthCardResponse     `json:"healthCard"`
	MedicalHistory []RecordResponse       `json:"medicalHistory"`
	Prescriptions  []PrescriptionResponse `json:"prescriptions"`
	Appointments   []AppointmentResponse  `json:"appointments"`
}

// NewPaymentResponse maps a payment.
func NewPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		AppointmentID: p.AppointmentID,
		Amount:        p.Amount,
		PaymentMethod: p.Method,
		Status:        p.Status,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// NewPaymentResponses maps a slice of payments.
func NewPaymentResponses(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, NewPaymentResponse(&payments[i]))
	}
	return out
}

// NewHealthCardResponse maps a health card.
func NewHealthCardResponse(card *domain.HealthCard) HealthCardResponse {
	resp := HealthCardResponse{
		ID:                card.ID,
		PatientID:         card.PatientID,
		CardNumber:        card.CardNumber,
		QRCode:            card.QRCode,
		BloodGroup:        card.BloodGroup,
		Allergies:         card.Allergies,
		MedicalConditions: card.MedicalConditions,
		CreatedAt:         card.CreatedAt,
		UpdatedAt:         card.UpdatedAt,
	}
	if card.EmergencyContact != nil {
		resp.EmergencyContact = &EmergencyContactPayload{
			Name:         card.EmergencyContact.Name,
			Phone:        card.EmergencyContact.Phone,
			Relationship: card.EmergencyContact.Relationship,
		}
	}
	return resp
}

// NewScanResponse maps a scan result.
func NewScanResponse(r *service.ScanResult) ScanResponse {
	return ScanResponse{
		Patient:        NewUserResponse(r.Patient),
		HealthCard:     NewHealthCardResponse(r.Card),
		MedicalHistory: NewRecordResponses(r.Records),
		Prescriptions:  NewPrescriptionResponses(r.Prescriptions),
		Appointments:   NewAppointmentResponses(r.Appointments),
	}
}
