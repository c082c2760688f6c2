package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/amritamcare/amritam-cms/internal/pkg/security"
)

// AdminKeyMiddleware guards mutating blog routes with the shared admin
// secret. When no secret is configured (and the app is not in dev mode) the
// guard passes requests through, matching the previous open behavior, but
// logs loudly so the gap is visible.
func AdminKeyMiddleware() fiber.Handler {
	warned := false
	return func(c *fiber.Ctx) error {
		if security.AdminToken() == "" {
			if !warned {
				fiberlog.Warn("ADMIN_TOKEN not set; mutating blog routes are unprotected")
				warned = true
			}
			return c.Next()
		}

		provided := extractAdminKeyFromHeader(c)
		if provided == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing admin key"})
		}
		if !security.VerifyAdminToken(provided) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid admin key"})
		}

		return c.Next()
	}
}

func extractAdminKeyFromHeader(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.Get("X-Admin-Key"))
	if key != "" {
		return key
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
