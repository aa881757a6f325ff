package handler

import (
	"eduquiz-web/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// View names, relative to the embedded views directory.
const (
	viewLanding = "landing"
	viewSignIn  = "signin"
	viewSignUp  = "signup"
	viewInput   = "input"
	viewQuiz    = "quiz"
	viewResults = "results"
)

func render(c *fiber.Ctx, status int, view string, data fiber.Map) error {
	return c.Status(status).Render(view, middleware.ViewData(c, data), middleware.Layout)
}
