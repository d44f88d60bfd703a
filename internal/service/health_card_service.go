package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/events"
	"github.com/healthapp/healthcare-portal/internal/repository"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

const (
	scanRecordLimit       = 10
	scanPrescriptionLimit = 10
	scanAppointmentLimit  = 5
)

// HealthCardService issues patient health cards and resolves scanned ones.
type HealthCardService struct {
	repos     Repositories
	qrBaseURL string
	now       func() time.Time
	events    publisher
}

// HealthCardUpdate carries optional card changes.
type HealthCardUpdate struct {
	BloodGroup        string
	Allergies         []string
	EmergencyContact  *domain.EmergencyContact
	MedicalConditions []string
}

// ScanResult is what a doctor sees after scanning a card.
type ScanResult struct {
	Patient       *domain.User
	Card          *domain.HealthCard
	Records       []domain.MedicalRecord
	Prescriptions []domain.Prescription
	Appointments  []domain.Appointment
}

// qrPayload is the JSON document encoded into the card's QR code.
type qrPayload struct {
	CardNumber string `json:"cardNumber"`
	PatientID  string `json:"patientId"`
}

// NewHealthCardService constructs the service.
func NewHealthCardService(repos Repositories, qrBaseURL string, dispatcher events.Dispatcher) *HealthCardService {
	return &HealthCardService{
		repos:     repos,
		qrBaseURL: qrBaseURL,
		now:       time.Now,
		events:    publisher{dispatcher: dispatcher},
	}
}

// Get returns the caller's card, creating it on first access.
func (s *HealthCardService) Get(ctx context.Context, p *domain.Principal) (*domain.HealthCard, error) {
	card, err := s.repos.HealthCards.GetByPatientID(ctx, p.SubjectID)
	if err == nil {
		return card, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	card = &domain.HealthCard{
		PatientID:         p.SubjectID,
		CardNumber:        referenceCode("HC", s.now()),
		Allergies:         []string{},
		MedicalConditions: []string{},
	}
	card.QRCode = s.qrURL(card)
	if err := s.repos.HealthCards.Create(ctx, card); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// A concurrent first request created it.
			existing, getErr := s.repos.HealthCards.GetByPatientID(ctx, p.SubjectID)
			if getErr == nil {
				return existing, nil
			}
		}
		return nil, apperrors.MapError(err)
	}
	return card, nil
}

// Update changes the caller's existing card.
func (s *HealthCardService) Update(ctx context.Context, p *domain.Principal, in HealthCardUpdate) (*domain.HealthCard, error) {
	card, err := s.repos.HealthCards.GetByPatientID(ctx, p.SubjectID)
	if err != nil {
		return nil, notFound(err, "Health card")
	}

	setIf(&card.BloodGroup, in.BloodGroup)
	if in.Allergies != nil {
		card.Allergies = in.Allergies
	}
	if in.EmergencyContact != nil {
		card.EmergencyContact = in.EmergencyContact
	}
	if in.MedicalConditions != nil {
		card.MedicalConditions = in.MedicalConditions
	}

	if err := s.repos.HealthCards.Update(ctx, card); err != nil {
		return nil, notFound(err, "Health card")
	}
	return card, nil
}

// Scan resolves a card number, or the raw JSON read from its QR code, into
// the patient's recent clinical history.
func (s *HealthCardService) Scan(ctx context.Context, p *domain.Principal, input string) (*ScanResult, error) {
	cardNumber := ParseCardInput(input)
	if cardNumber == "" {
		return nil, apperrors.NewValidationError("Card number is required", nil)
	}

	card, err := s.repos.HealthCards.GetByCardNumber(ctx, cardNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Health card")
		}
		return nil, apperrors.MapError(err)
	}
	patient, err := s.repos.Users.GetByID(ctx, card.PatientID)
	if err != nil {
		return nil, notFound(err, "Patient")
	}

	scope := Scope{PatientID: &card.PatientID}
	records, err := s.repos.MedicalRecords.List(ctx, scope.clinical(scanRecordLimit))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	prescriptions, err := s.repos.Prescriptions.List(ctx, scope.clinical(scanPrescriptionLimit))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	appointments, err := s.repos.Appointments.List(ctx, repository.AppointmentFilter{
		PatientID: &card.PatientID,
		Limit:     scanAppointmentLimit,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.events.publish(ctx, events.EventHealthCardScanned, card.ID, p, events.ClinicalPayload{
		PatientID: card.PatientID,
		DoctorID:  p.SubjectID,
		Summary:   card.CardNumber,
	})
	return &ScanResult{
		Patient:       patient,
		Card:          card,
		Records:       records,
		Prescriptions: prescriptions,
		Appointments:  appointments,
	}, nil
}

// ParseCardInput accepts a bare card number or the QR payload
// {"cardNumber": ..., "patientId": ...} and returns the card number.
func ParseCardInput(input string) string {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "{") {
		var payload qrPayload
		if err := json.Unmarshal([]byte(input), &payload); err != nil {
			return ""
		}
		return strings.TrimSpace(payload.CardNumber)
	}
	return input
}

func (s *HealthCardService) qrURL(card *domain.HealthCard) string {
	payload, _ := json.Marshal(qrPayload{CardNumber: card.CardNumber, PatientID: card.PatientID})
	return s.qrBaseURL + url.QueryEscape(string(payload))
}
