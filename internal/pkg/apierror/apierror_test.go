package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, fiber.StatusBadRequest},
		{KindNotFound, fiber.StatusNotFound},
		{KindTimeout, fiber.StatusRequestTimeout},
		{KindUpstream, fiber.StatusInternalServerError},
		{KindConversion, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.kind, "boom").HTTPStatus(), string(tt.kind))
	}
}

func TestWrapUnwrapsToCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := Wrap(KindUpstream, "upload failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "upload failed")
	assert.Contains(t, err.Error(), "socket closed")
}

func respondWith(t *testing.T, err error) (*http.Response, map[string]any) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Respond(c, err)
	})
	req, reqErr := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, reqErr)
	resp, reqErr := app.Test(req, -1)
	require.NoError(t, reqErr)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestRespondClassifiedError(t *testing.T) {
	err := New(KindTimeout, "Upload timed out")
	err.Detail = "Keep images under 2MB for faster uploads"

	resp, body := respondWith(t, err)

	assert.Equal(t, fiber.StatusRequestTimeout, resp.StatusCode)
	assert.Equal(t, "upstream_timeout", body["error"])
	assert.Equal(t, "Upload timed out", body["message"])
	assert.Equal(t, "Keep images under 2MB for faster uploads", body["details"])
}

func TestRespondIncludesUpstreamStatus(t *testing.T) {
	err := New(KindUpstream, "Image host rejected the upload")
	err.UpstreamStatus = 420

	resp, body := respondWith(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, float64(420), body["upstream_status"])
}

func TestRespondUnclassifiedErrorHidesDetails(t *testing.T) {
	resp, body := respondWith(t, fmt.Errorf("pq: connection refused"))

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal_server_error", body["error"])
	assert.NotContains(t, body["message"], "pq:")
}
