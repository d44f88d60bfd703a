package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/api/dto"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// AppointmentsHandler manages appointment endpoints.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// List GET /api/appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	views, err := h.service.List(c.UserContext(), principal, c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"appointments": dto.NewAppointmentViews(views)})
}

// ListAll GET /api/admin/appointments.
func (h *AppointmentsHandler) ListAll(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	views, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"appointments": dto.NewAppointmentViews(views)})
}

// Create POST /api/appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateAppointmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	appt, err := h.service.Book(c.UserContext(), principal, service.BookInput{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Time:     req.Time,
		Reason:   req.Reason,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(success(fiber.Map{
		"appointmentId": appt.ID,
		"appointment":   dto.NewAppointmentResponse(appt),
	}))
}

// Update PATCH /api/appointments/:id.
func (h *AppointmentsHandler) Update(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAppointmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	appt, err := h.service.Update(c.UserContext(), principal, c.Params("id"), service.AppointmentUpdate{
		Status: req.Status,
		Notes:  req.Notes,
		Date:   req.Date,
		Time:   req.Time,
	})
	if err != nil {
		return err
	}
	return c.JSON(success(fiber.Map{"appointment": dto.NewAppointmentResponse(appt)}))
}

// Delete DELETE /api/appointments/:id.
func (h *AppointmentsHandler) Delete(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(success(nil))
}
