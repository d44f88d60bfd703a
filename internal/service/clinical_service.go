package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/events"
	"github.com/healthapp/healthcare-portal/internal/repository"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

// ClinicalService manages medical records and prescriptions authored by doctors.
type ClinicalService struct {
	records       repository.MedicalRecordRepository
	prescriptions repository.PrescriptionRepository
	medicines     repository.MedicineRepository
	users         repository.UserRepository
	populate      population
	events        publisher
}

// RecordView is a medical record with its participants resolved.
type RecordView struct {
	domain.MedicalRecord
	Patient *domain.User
	Doctor  *domain.User
}

// PrescriptionView is a prescription with participants and medicine resolved.
type PrescriptionView struct {
	domain.Prescription
	Patient  *domain.User
	Doctor   *domain.User
	Medicine *domain.Medicine
}

// RecordInput describes a new medical record.
type RecordInput struct {
	PatientID       string
	AppointmentID   string
	Diagnosis       string
	Symptoms        []string
	Treatment       string
	PrescriptionIDs []string
	LabResults      string
	Notes           string
}

// PrescriptionInput describes a new prescription.
type PrescriptionInput struct {
	PatientID    string
	MedicineID   string
	MedicineName string
	Dosage       string
	Frequency    string
	Duration     string
	Instructions string
}

// NewClinicalService constructs the service.
func NewClinicalService(repos Repositories, dispatcher events.Dispatcher, logger *zap.Logger) *ClinicalService {
	return &ClinicalService{
		records:       repos.MedicalRecords,
		prescriptions: repos.Prescriptions,
		medicines:     repos.Medicines,
		users:         repos.Users,
		populate:      population{users: repos.Users, log: logger},
		events:        publisher{dispatcher: dispatcher},
	}
}

// ListRecords returns the caller's records, newest first.
func (s *ClinicalService) ListRecords(ctx context.Context, p *domain.Principal) ([]RecordView, error) {
	records, err := s.records.List(ctx, ScopeFor(p).clinical(0))
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ids := make([]string, 0, len(records)*2)
	for _, r := range records {
		ids = append(ids, r.PatientID, r.DoctorID)
	}
	users := s.populate.resolve(ctx, ids...)

	views := make([]RecordView, 0, len(records))
	for _, r := range records {
		views = append(views, RecordView{MedicalRecord: r, Patient: users[r.PatientID], Doctor: users[r.DoctorID]})
	}
	return views, nil
}

// CreateRecord stores a record authored by the calling doctor.
func (s *ClinicalService) CreateRecord(ctx context.Context, p *domain.Principal, in RecordInput) (*domain.MedicalRecord, error) {
	if err := required(map[string]string{"patientId": in.PatientID, "diagnosis": in.Diagnosis, "treatment": in.Treatment}); err != nil {
		return nil, err
	}
	if len(in.Symptoms) == 0 {
		return nil, apperrors.NewValidationError("Missing required fields", nil)
	}
	if err := s.requirePatient(ctx, in.PatientID); err != nil {
		return nil, err
	}

	record := &domain.MedicalRecord{
		PatientID:       in.PatientID,
		DoctorID:        p.SubjectID,
		Diagnosis:       strings.TrimSpace(in.Diagnosis),
		Symptoms:        in.Symptoms,
		Treatment:       strings.TrimSpace(in.Treatment),
		PrescriptionIDs: in.PrescriptionIDs,
		LabResults:      in.LabResults,
		Notes:           in.Notes,
	}
	if record.PrescriptionIDs == nil {
		record.PrescriptionIDs = []string{}
	}
	if in.AppointmentID != "" {
		if !validID(in.AppointmentID) {
			return nil, apperrors.NewValidationError("Invalid appointment id", map[string]any{"appointmentId": in.AppointmentID})
		}
		appointmentID := in.AppointmentID
		record.AppointmentID = &appointmentID
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.EventMedicalRecordCreated, record.ID, p, events.ClinicalPayload{
		PatientID: record.PatientID,
		DoctorID:  record.DoctorID,
		Summary:   record.Diagnosis,
	})
	return record, nil
}

// ListPrescriptions returns the caller's prescriptions, newest first.
func (s *ClinicalService) ListPrescriptions(ctx context.Context, p *domain.Principal) ([]PrescriptionView, error) {
	prescriptions, err := s.prescriptions.List(ctx, ScopeFor(p).clinical(0))
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ids := make([]string, 0, len(prescriptions)*2)
	for _, rx := range prescriptions {
		ids = append(ids, rx.PatientID, rx.DoctorID)
	}
	users := s.populate.resolve(ctx, ids...)
	medicines := s.resolveMedicines(ctx, prescriptions)

	views := make([]PrescriptionView, 0, len(prescriptions))
	for _, rx := range prescriptions {
		view := PrescriptionView{Prescription: rx, Patient: users[rx.PatientID], Doctor: users[rx.DoctorID]}
		if rx.MedicineID != nil {
			view.Medicine = medicines[*rx.MedicineID]
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ClinicalService) resolveMedicines(ctx context.Context, prescriptions []domain.Prescription) map[string]*domain.Medicine {
	result := map[string]*domain.Medicine{}
	for _, rx := range prescriptions {
		if rx.MedicineID == nil || !validID(*rx.MedicineID) {
			continue
		}
		if _, seen := result[*rx.MedicineID]; seen {
			continue
		}
		m, err := s.medicines.GetByID(ctx, *rx.MedicineID)
		if err != nil {
			// Deleted medicines leave the prescription unpopulated.
			result[*rx.MedicineID] = nil
			continue
		}
		result[*rx.MedicineID] = m
	}
	return result
}

// CreatePrescription stores a prescription issued by the calling doctor.
func (s *ClinicalService) CreatePrescription(ctx context.Context, p *domain.Principal, in PrescriptionInput) (*domain.Prescription, error) {
	if err := required(map[string]string{
		"patientId":    in.PatientID,
		"medicineName": in.MedicineName,
		"dosage":       in.Dosage,
		"frequency":    in.Frequency,
		"duration":     in.Duration,
	}); err != nil {
		return nil, err
	}
	if err := s.requirePatient(ctx, in.PatientID); err != nil {
		return nil, err
	}

	rx := &domain.Prescription{
		PatientID:    in.PatientID,
		DoctorID:     p.SubjectID,
		MedicineName: strings.TrimSpace(in.MedicineName),
		Dosage:       in.Dosage,
		Frequency:    in.Frequency,
		Duration:     in.Duration,
		Instructions: in.Instructions,
		Status:       domain.PrescriptionActive,
	}
	if in.MedicineID != "" {
		if !validID(in.MedicineID) {
			return nil, apperrors.NewNotFound("Medicine")
		}
		if _, err := s.medicines.GetByID(ctx, in.MedicineID); err != nil {
			return nil, notFound(err, "Medicine")
		}
		medicineID := in.MedicineID
		rx.MedicineID = &medicineID
	}

	if err := s.prescriptions.Create(ctx, rx); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.EventPrescriptionIssued, rx.ID, p, events.ClinicalPayload{
		PatientID: rx.PatientID,
		DoctorID:  rx.DoctorID,
		Summary:   rx.MedicineName,
	})
	return rx, nil
}

func (s *ClinicalService) requirePatient(ctx context.Context, id string) error {
	if !validID(id) {
		return apperrors.NewNotFound("Patient")
	}
	patient, err := s.users.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Patient")
	}
	if patient.Role != domain.RolePatient {
		return apperrors.NewNotFound("Patient")
	}
	return nil
}
