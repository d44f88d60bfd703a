package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/api/dto"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// StaffHandler exposes admin staff management, statistics and the user directories.
type StaffHandler struct {
	staff *service.StaffService
	stats *service.StatsService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService, statsService *service.StatsService) *StaffHandler {
	return &StaffHandler{staff: staffService, stats: statsService}
}

// CreateStaff handles POST /api/admin/staff.
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StaffCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.staff.CreateStaff(c.UserContext(), principal, service.StaffInput{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		Role:           req.Role,
		Phone:          req.Phone,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
		Department:     req.Department,
		HospitalID:     req.HospitalID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(success(fiber.Map{
		"userId": user.ID,
		"user":   dto.NewUserResponse(user),
	}))
}

// ListStaff handles GET /api/admin/staff.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	staff, err := h.staff.ListStaff(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"staff": dto.NewUserResponses(staff)})
}

// Stats handles GET /api/admin/stats.
func (h *StaffHandler) Stats(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	stats, err := h.stats.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": dto.NewStatsResponse(stats)})
}

// ListPatients handles GET /api/patients.
func (h *StaffHandler) ListPatients(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	patients, err := h.staff.ListPatients(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"patients": dto.NewUserResponses(patients)})
}

// ListDoctors handles GET /api/doctors.
func (h *StaffHandler) ListDoctors(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	doctors, err := h.staff.ListDoctors(c.UserContext(), c.Query("department"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"doctors": dto.NewUserResponses(doctors)})
}
