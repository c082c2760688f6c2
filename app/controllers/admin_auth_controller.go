package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amritamcare/amritam-cms/internal/pkg/apierror"
	"github.com/amritamcare/amritam-cms/internal/pkg/security"
)

// HandleAdminLogin verifies the shared admin secret submitted by the panel.
func HandleAdminLogin(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apierror.Respond(c, apierror.Wrap(apierror.KindValidation, "Invalid request", err))
	}

	if security.AdminToken() == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "unavailable",
			"message": "Admin access is not configured",
		})
	}

	if !security.VerifyAdminToken(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Incorrect password",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
