package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/api/dto"
	"github.com/healthapp/healthcare-portal/internal/auth"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// AuthHandler exposes registration, login, logout and the caller's profile.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.SessionAccessor
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionAccessor) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Role:        req.Role,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
	})
	if err != nil {
		return err
	}

	h.sessions.Establish(c, session.Token)
	return c.Status(http.StatusCreated).JSON(success(fiber.Map{"user": dto.NewSessionUser(session.User)}))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.sessions.Establish(c, session.Token)
	return c.JSON(success(fiber.Map{"user": dto.NewSessionUser(session.User)}))
}

// Logout handles POST /api/auth/logout. The token is not revoked.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.JSON(success(nil))
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	user, err := h.auth.Me(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// Profile handles GET /api/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	return h.Me(c)
}

// UpdateProfile handles PUT /api/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ProfileUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.auth.UpdateProfile(c.UserContext(), principal, service.ProfileUpdate{
		Name:             req.Name,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		Address:          req.Address,
		Specialization:   req.Specialization,
		Department:       req.Department,
		Allergies:        req.Allergies,
		BloodGroup:       req.BloodGroup,
		MedicalHistory:   req.MedicalHistory,
		EmergencyContact: req.EmergencyContact,
		CurrentPassword:  req.CurrentPassword,
		NewPassword:      req.NewPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(success(fiber.Map{"user": dto.NewUserResponse(user)}))
}
