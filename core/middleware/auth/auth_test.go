package auth_test

import (
	"net/http/httptest"
	"testing"

	"achievement-manager/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	newApp := func(key string) *fiber.App {
		app := fiber.New()
		app.Use(auth.New(auth.Config{ApiKey: key, Public: []string{"/health"}}))
		ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
		app.Get("/health", ok)
		app.Get("/games", ok)
		return app
	}

	tests := []struct {
		name   string
		key    string
		header string
		path   string
		want   int
	}{
		{"Disabled", "", "", "/games", fiber.StatusOK},
		{"Valid", "secret", "secret", "/games", fiber.StatusOK},
		{"Missing", "secret", "", "/games", fiber.StatusUnauthorized},
		{"Wrong", "secret", "nope", "/games", fiber.StatusUnauthorized},
		{"Public", "secret", "", "/health", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(auth.Header, tt.header)
			}
			resp, err := newApp(tt.key).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
