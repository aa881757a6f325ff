package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/middleware"
	"eduquiz-web/internal/service"
	"eduquiz-web/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixtureSID    = "01HZXJ4N8V8S2Q9K3M5T7W1Y2Z"
	fixtureSecret = "0123456789abcdef0123456789abcdef"
)

// newFixtureApp mounts the quiz handler without the session middleware; the
// session id and auth state are injected directly.
func newFixtureApp(t *testing.T) (*fiber.App, *service.HandoffCodec) {
	t.Helper()
	views, err := web.NewEngine()
	require.NoError(t, err)

	handoff := service.NewHandoffCodec(fixtureSecret, time.Hour)
	h := NewQuizHandler(service.NewQuizFlow(nil, nil), handoff)

	app := fiber.New(fiber.Config{Views: views, ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.SessionIDKey, fixtureSID)
		middleware.SetAuthState(c, domain.AuthState{Authenticated: true, User: &domain.User{Email: "ada@example.com"}, Token: "tok"})
		return c.Next()
	})
	app.Post("/quiz", h.Navigate)
	app.Post("/results", h.Submit)
	app.Get("/results", h.Missing)
	return app, handoff
}

func fixtureAttempt(t *testing.T, answers ...int) *domain.Attempt {
	t.Helper()
	qs := []domain.Question{
		{Text: "What is the capital of France?", Options: []string{"Berlin", "Madrid", "Rome", "Paris"}},
		{Text: "Which planet is known as the Red Planet?", Options: []string{"Earth", "Venus", "Jupiter", "Mars"}},
	}
	a, err := domain.NewAttempt(qs)
	require.NoError(t, err)
	for i, ans := range answers {
		a.Answers[i] = &ans
	}
	a.Current = len(qs) - 1
	return a
}

func post(t *testing.T, app *fiber.App, path string, form url.Values) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestQuizHandler_ResultsFromFixture(t *testing.T) {
	app, handoff := newFixtureApp(t)
	state, err := handoff.Encode(fixtureSID, fixtureAttempt(t, 3))
	require.NoError(t, err)

	status, body := post(t, app, "/results", url.Values{"state": {state}, "option": {"1"}})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "You scored 1 out of 2! (50%)")
	assert.Contains(t, body, "Q1. What is the capital of France?")
	assert.Contains(t, body, "Q2. Which planet is known as the Red Planet?")
	assert.Contains(t, body, "Incorrect")
	assert.Contains(t, body, "Your Answer")
	assert.Contains(t, body, "ada@example.com", "layout header is rendered")
}

func TestQuizHandler_NavigateSubmitAction(t *testing.T) {
	app, handoff := newFixtureApp(t)
	state, err := handoff.Encode(fixtureSID, fixtureAttempt(t, 3, 3))
	require.NoError(t, err)

	status, body := post(t, app, "/quiz", url.Values{"state": {state}, "action": {"submit"}})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "You scored 2 out of 2! (100%)")
}

func TestQuizHandler_InvalidOption(t *testing.T) {
	app, handoff := newFixtureApp(t)
	state, err := handoff.Encode(fixtureSID, fixtureAttempt(t, 3))
	require.NoError(t, err)

	for _, opt := range []string{"x", "7", "-1"} {
		status, body := post(t, app, "/results", url.Values{"state": {state}, "option": {opt}})
		assert.Equal(t, http.StatusUnprocessableEntity, status, opt)
		assert.Contains(t, body, "Please choose one of the listed options.", opt)
		assert.Contains(t, body, "Question 2 of 2", opt)
	}
}

func TestQuizHandler_UnknownAction(t *testing.T) {
	app, handoff := newFixtureApp(t)
	state, err := handoff.Encode(fixtureSID, fixtureAttempt(t, 3))
	require.NoError(t, err)

	status, _ := post(t, app, "/quiz", url.Values{"state": {state}, "action": {"jump"}})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestQuizHandler_Missing(t *testing.T) {
	app, _ := newFixtureApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/results", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestParseOption(t *testing.T) {
	got, err := parseOption("")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseOption(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, 2, *got)

	_, err = parseOption("two")
	assert.True(t, domain.IsCode(err, domain.CodeInvalidOption))
}
