package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("x"), http.StatusUnprocessableEntity},
		{"unanswered", domain.NewError(domain.CodeUnanswered, "x", nil), http.StatusUnprocessableEntity},
		{"navigation", domain.NewNavigationStateError("gone", nil), http.StatusNotFound},
		{"backend 4xx kept", domain.NewBackendError(409, "dup", nil), http.StatusConflict},
		{"backend 5xx", domain.NewBackendError(503, "", nil), http.StatusBadGateway},
		{"backend unreachable", domain.NewBackendError(0, "", errors.New("dial")), http.StatusBadGateway},
		{"fiber error", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, middleware.StatusFor(tt.err))
		})
	}
}

// Without a view engine the handler falls back to a plain-text body.
func TestErrorHandler_PlainFallback(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/internal", func(c *fiber.Ctx) error { return errors.New("db exploded") })
	app.Get("/quiz", func(c *fiber.Ctx) error { return domain.NewNavigationStateError("missing", nil) })
	app.Get("/invalid", func(c *fiber.Ctx) error { return domain.NewValidationError("Passwords do not match") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "db exploded", "internal details are not shown")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/quiz", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Please generate a quiz from the home page.", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/invalid", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Passwords do not match", string(body))
}

func TestErrorHandler_NotFoundCopyFollowsError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Post("/input", func(c *fiber.Ctx) error { return domain.NewNavigationStateError("quiz has no questions", nil) })
	app.Get("/results", func(c *fiber.Ctx) error { return domain.NewNavigationStateError("missing", nil) })
	app.Use(func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/input", "Please generate a quiz from the home page."},
		{http.MethodGet, "/results", "Please complete a quiz first."},
		{http.MethodGet, "/elsewhere", "The page you are looking for does not exist."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestViewData(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		data := middleware.ViewData(c, fiber.Map{"Title": "Quiz"})
		assert.Equal(t, "Quiz", data["Title"])
		assert.Equal(t, false, data["Authenticated"])
		assert.Equal(t, "", data["Email"])
		return nil
	})
	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
}
