package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/foodtrack/internal/middleware"
	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/testutil"
	"github.com/localnerve/foodtrack/internal/types"
	"github.com/localnerve/foodtrack/internal/utils"
	"github.com/stretchr/testify/assert"
)

type stubAuthenticator map[string]*models.User

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	if token == "expired" {
		return nil, types.Auth(types.ReasonExpiredToken, "token has expired")
	}
	if user, ok := s[token]; ok {
		return user, nil
	}
	return nil, types.Auth(types.ReasonInvalidToken, "token is invalid")
}

func newApp() *fiber.App {
	auth := stubAuthenticator{"good": {ID: "1", Username: "alice123"}}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/users/:username", middleware.AuthUser(auth), middleware.RequireOwner(), func(c *fiber.Ctx) error {
		return c.SendString(middleware.CurrentUser(c).ID)
	})
	app.Get("/storage", func(*fiber.Ctx) error {
		return types.Storage("find user", errors.New("connection refused"))
	})
	app.Get("/teapot", func(*fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/version", middleware.VersionMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})
	return app
}

func TestAuthUser(t *testing.T) {
	app := newApp()

	cases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"no header", "/users/alice123", "", fiber.StatusUnauthorized},
		{"wrong scheme", "/users/alice123", "Basic good", fiber.StatusUnauthorized},
		{"invalid token", "/users/alice123", "Bearer bad", fiber.StatusUnauthorized},
		{"expired token", "/users/alice123", "Bearer expired", fiber.StatusUnauthorized},
		{"other user", "/users/bob12345", "Bearer good", fiber.StatusForbidden},
		{"owner", "/users/alice123", "bearer good", fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("Failed to execute request: %v", err)
			}
			testutil.AssertStatus(t, resp, tc.status)
		})
	}
}

func TestErrorHandlerHidesStorageDetail(t *testing.T) {
	resp := testutil.Request(t, newApp(), http.MethodGet, "/storage", nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusInternalServerError)

	var body utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.Equal(t, "storage", body.Type)
	assert.Equal(t, "/storage", body.URL)
	assert.NotContains(t, body.Message, "connection refused")
}

func TestErrorHandlerFiberError(t *testing.T) {
	resp := testutil.Request(t, newApp(), http.MethodGet, "/teapot", nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusTeapot)

	var body utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, "short and stout", body.Message)
}

func TestVersionMiddleware(t *testing.T) {
	app := newApp()

	resp := testutil.Request(t, app, http.MethodGet, "/version", nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	assert.Equal(t, middleware.APIVersion, resp.Header.Get("X-Api-Version"))

	req, _ := http.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set("X-Api-Version", "2.0.0")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	assert.Equal(t, "2.0.0", resp.Header.Get("X-Api-Version"))
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.CORS("https://app.example.com"))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	cases := []struct {
		name   string
		origin string
		allow  string
	}{
		{"allowed origin", "https://app.example.com", "https://app.example.com"},
		{"other origin", "https://evil.example.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodOptions, "/ping", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("Failed to execute request: %v", err)
			}
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
			assert.Equal(t, tc.allow, resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSAnyOrigin(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.CORS(""))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Api-Version", resp.Header.Get("Access-Control-Expose-Headers"))
}
