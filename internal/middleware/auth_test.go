package middleware_test

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/gamesuite/internal/config"
	"github.com/lk16/gamesuite/internal/middleware"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	cfg := &config.ServerConfig{
		BasicAuthUsername: "user",
		BasicAuthPassword: "pass",
		Token:             "secret",
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		return c.Next()
	})
	app.Get("/", middleware.AuthOrToken(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return app
}

func TestAuthOrToken(t *testing.T) {
	basic := func(user, pass string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
	}

	tests := []struct {
		name           string
		path           string
		header         map[string]string
		wantStatusCode int
	}{
		{"none", "/", nil, http.StatusUnauthorized},
		{"tokenHeader", "/", map[string]string{"x-token": "secret"}, http.StatusOK},
		{"wrongTokenHeader", "/", map[string]string{"x-token": "guess"}, http.StatusUnauthorized},
		{"tokenQuery", "/?token=secret", nil, http.StatusOK},
		{"wrongTokenQuery", "/?token=guess", nil, http.StatusUnauthorized},
		{"basicAuth", "/", map[string]string{"Authorization": basic("user", "pass")}, http.StatusOK},
		{"wrongBasicAuth", "/", map[string]string{"Authorization": basic("user", "guess")}, http.StatusUnauthorized},
	}

	app := newApp()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tt.path, nil)
			require.NoError(t, err)

			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)

			defer resp.Body.Close()

			require.Equal(t, tt.wantStatusCode, resp.StatusCode)
		})
	}
}
