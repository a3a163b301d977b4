// Package tests contains helpers for testing the HTTP routes.
package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/gamesuite/internal"
	"github.com/lk16/gamesuite/internal/config"
	"github.com/lk16/gamesuite/internal/services"
	"github.com/stretchr/testify/require"
)

const (
	TestToken    = "test-token"
	TestUser     = "test-user"
	TestPassword = "test-password"
)

// Config returns a configuration that needs no environment variables.
func Config() *config.ServerConfig {
	return &config.ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "0",
		BasicAuthUsername: TestUser,
		BasicAuthPassword: TestPassword,
		Token:             TestToken,
		AIDepth:           1,
	}
}

// NewApp builds an app with in-memory sessions and save slots disabled.
func NewApp() *fiber.App {
	return internal.BuildApp(Config(), &services.Services{})
}

// Request sends a request with an optional JSON payload to app. If token is
// not empty it is sent in the x-token header.
func Request(t *testing.T, app *fiber.App, method, path string, payload any, token string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-token", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() {
		resp.Body.Close()
	})

	return resp
}

// Decode decodes the JSON body of resp into a value of type T.
func Decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var value T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&value))
	return value
}
