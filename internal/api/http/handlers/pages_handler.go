package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/auth"
)

// PagesHandler answers page routes with a view descriptor that a front end renders.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Render describes the requested page and, behind the route gate, who is viewing it.
func (h *PagesHandler) Render(c *fiber.Ctx) error {
	body := fiber.Map{
		"page": pageName(c.Path()),
		"path": c.Path(),
	}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		body["viewer"] = fiber.Map{
			"id":   principal.SubjectID,
			"name": principal.Name,
			"role": principal.Role,
		}
	}
	return c.JSON(body)
}

func pageName(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "home"
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}
