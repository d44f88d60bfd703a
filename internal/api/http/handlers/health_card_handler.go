package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/api/dto"
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// HealthCardHandler serves the patient card and the doctor scanner.
type HealthCardHandler struct {
	service *service.HealthCardService
}

// NewHealthCardHandler constructs handler.
func NewHealthCardHandler(healthCardService *service.HealthCardService) *HealthCardHandler {
	return &HealthCardHandler{service: healthCardService}
}

// Get GET /api/health-card.
func (h *HealthCardHandler) Get(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	card, err := h.service.Get(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"healthCard": dto.NewHealthCardResponse(card)})
}

// Update PATCH /api/health-card.
func (h *HealthCardHandler) Update(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.HealthCardUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	update := service.HealthCardUpdate{
		BloodGroup:        req.BloodGroup,
		Allergies:         req.Allergies,
		MedicalConditions: req.MedicalConditions,
	}
	if req.EmergencyContact != nil {
		update.EmergencyContact = &domain.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Phone:        req.EmergencyContact.Phone,
			Relationship: req.EmergencyContact.Relationship,
		}
	}
	card, err := h.service.Update(c.UserContext(), principal, update)
	if err != nil {
		return err
	}
	return c.JSON(success(fiber.Map{"healthCard": dto.NewHealthCardResponse(card)}))
}

// Scan POST /api/health-card/scan.
func (h *HealthCardHandler) Scan(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ScanRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	input := req.CardNumber
	if input == "" {
		input = req.QRData
	}
	result, err := h.service.Scan(c.UserContext(), principal, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewScanResponse(result))
}
