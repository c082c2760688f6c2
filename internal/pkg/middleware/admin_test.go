package middleware

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amritamcare/amritam-cms/internal/pkg/env"
)

func newGuardedApp() *fiber.App {
	app := fiber.New()
	app.Post("/protected", AdminKeyMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func setAdminToken(t *testing.T, token string) {
	t.Helper()
	old := env.Env
	env.Env = map[string]string{"ADMIN_TOKEN": token, "APP_ENV": "prod"}
	t.Cleanup(func() { env.Env = old })
}

func TestAdminKeyMiddleware_PassesThroughWhenUnconfigured(t *testing.T) {
	setAdminToken(t, "")

	app := newGuardedApp()
	req, err := http.NewRequest(http.MethodPost, "/protected", nil)
	require.NoError(t, err)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminKeyMiddleware_RejectsMissingKey(t *testing.T) {
	setAdminToken(t, "topsecret")

	app := newGuardedApp()
	req, err := http.NewRequest(http.MethodPost, "/protected", nil)
	require.NoError(t, err)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminKeyMiddleware_RejectsWrongKey(t *testing.T) {
	setAdminToken(t, "topsecret")

	app := newGuardedApp()
	req, err := http.NewRequest(http.MethodPost, "/protected", nil)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Key", "nope")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminKeyMiddleware_AcceptsHeaderKey(t *testing.T) {
	setAdminToken(t, "topsecret")

	app := newGuardedApp()
	req, err := http.NewRequest(http.MethodPost, "/protected", nil)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Key", "topsecret")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminKeyMiddleware_AcceptsBearerToken(t *testing.T) {
	setAdminToken(t, "topsecret")

	app := newGuardedApp()
	req, err := http.NewRequest(http.MethodPost, "/protected", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer topsecret")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
