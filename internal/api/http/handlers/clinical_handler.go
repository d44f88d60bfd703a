package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/api/dto"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// ClinicalHandler serves medical records and prescriptions.
type ClinicalHandler struct {
	service *service.ClinicalService
}

// NewClinicalHandler constructs handler.
func NewClinicalHandler(clinicalService *service.ClinicalService) *ClinicalHandler {
	return &ClinicalHandler{service: clinicalService}
}

// ListRecords GET /api/medical-records.
func (h *ClinicalHandler) ListRecords(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	views, err := h.service.ListRecords(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"records": dto.NewRecordViews(views)})
}

// CreateRecord POST /api/medical-records.
func (h *ClinicalHandler) CreateRecord(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateRecordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	record, err := h.service.CreateRecord(c.UserContext(), principal, service.RecordInput{
		PatientID:       req.PatientID,
		AppointmentID:   req.AppointmentID,
		Diagnosis:       req.Diagnosis,
		Symptoms:        req.Symptoms,
		Treatment:       req.Treatment,
		PrescriptionIDs: req.Prescriptions,
		LabResults:      req.LabResults,
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(success(fiber.Map{
		"recordId": record.ID,
		"record":   dto.NewRecordResponse(record),
	}))
}

// ListPrescriptions GET /api/prescriptions.
func (h *ClinicalHandler) ListPrescriptions(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	views, err := h.service.ListPrescriptions(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"prescriptions": dto.NewPrescriptionViews(views)})
}

// CreatePrescription POST /api/prescriptions.
func (h *ClinicalHandler) CreatePrescription(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreatePrescriptionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	rx, err := h.service.CreatePrescription(c.UserContext(), principal, service.PrescriptionInput{
		PatientID:    req.PatientID,
		MedicineID:   req.MedicineID,
		MedicineName: req.MedicineName,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Duration:     req.Duration,
		Instructions: req.Instructions,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(success(fiber.Map{
		"prescriptionId": rx.ID,
		"prescription":   dto.NewPrescriptionResponse(rx),
	}))
}
