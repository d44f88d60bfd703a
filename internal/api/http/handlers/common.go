package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/auth"
	"github.com/healthapp/healthcare-portal/internal/domain"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

// currentPrincipal re-reads the principal placed by the gate. Handlers call
// it before touching any store.
func currentPrincipal(c *fiber.Ctx) (*domain.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal == nil || !principal.Role.Valid() {
		return nil, apperrors.NewUnauthorized("")
	}
	return principal, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	return nil
}

func success(extra fiber.Map) fiber.Map {
	body := fiber.Map{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	return body
}
