package middleware_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"ygo-pipelines/core/middleware/auth"
	"ygo-pipelines/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(apiKey string) *fiber.App {
	app := fiber.New()
	app.Use(rayid.New())
	app.Use(auth.New(auth.Config{ApiKey: apiKey, Skip: []string{"/health"}}))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/runs", func(c *fiber.Ctx) error { return c.SendString(c.Locals("ray_id").(string)) })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp("secret")

	tests := []struct {
		name   string
		path   string
		key    string
		status int
	}{
		{"PublicPath", "/health", "", fiber.StatusOK},
		{"MissingKey", "/runs", "", fiber.StatusUnauthorized},
		{"WrongKey", "/runs", "nope", fiber.StatusUnauthorized},
		{"ValidKey", "/runs", "secret", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(auth.HeaderName, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	t.Run("Disabled", func(t *testing.T) {
		resp, err := newApp("").Test(httptest.NewRequest("GET", "/runs", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRayID(t *testing.T) {
	app := newApp("")

	t.Run("Generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/runs", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.NotEmpty(t, resp.Header.Get(rayid.HeaderName))
		assert.Equal(t, resp.Header.Get(rayid.HeaderName), string(body))
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/runs", nil)
		req.Header.Set(rayid.HeaderName, "abc-123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "abc-123", resp.Header.Get(rayid.HeaderName))
	})
}
