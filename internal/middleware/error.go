package middleware

import (
	"errors"
	"net/http"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// View names rendered by the error handler.
const (
	ViewNotFound = "notfound"
	ViewError    = "error"
	Layout       = "layouts/main"
)

// ViewData merges data with the values every layout needs.
func ViewData(c *fiber.Ctx, data fiber.Map) fiber.Map {
	out := fiber.Map{}
	for k, v := range data {
		out[k] = v
	}
	state := AuthState(c)
	out["Authenticated"] = state.Authenticated
	out["Email"] = state.Email()
	return out
}

// StatusFor maps an error to the HTTP status it is rendered with.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch domain.CodeOf(err) {
	case domain.CodeValidation, domain.CodeUnanswered, domain.CodeInvalidOption:
		return http.StatusUnprocessableEntity
	case domain.CodeNavigationState:
		return http.StatusNotFound
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeBackend:
		if status := domain.BackendStatus(err); status >= 400 && status < 500 {
			return status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler is a centralized error handling middleware. Missing navigation
// state and unknown routes render the not-found view; everything else renders
// the generic error view.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()
		status := StatusFor(err)

		view := ViewError
		heading := ""
		message := "Something went wrong. Please try again."
		switch {
		case status == http.StatusNotFound:
			view = ViewNotFound
			heading, message = notFoundCopy(c.Path(), err)
			log.Debug("Not found", zap.String("path", c.Path()), zap.Error(err))
		case status >= http.StatusInternalServerError:
			log.Error("Request failed",
				zap.String("path", c.Path()),
				zap.String("code", string(domain.CodeOf(err))),
				zap.Int("status", status),
				zap.Error(err),
			)
		default:
			message = domain.MessageOr(err, http.StatusText(status))
			log.Warn("Request rejected",
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			)
		}

		c.Status(status)
		if renderErr := c.Render(view, ViewData(c, fiber.Map{
			"Title":   http.StatusText(status),
			"Status":  status,
			"Heading": heading,
			"Message": message,
		}), Layout); renderErr != nil {
			log.Error("Failed to render error view", zap.Error(renderErr))
			return c.Status(status).SendString(message)
		}
		return nil
	}
}

// notFoundCopy picks the fallback text. Missing quiz data reads the same on
// every quiz route, including a generate call that came back empty.
func notFoundCopy(path string, err error) (heading, message string) {
	switch {
	case path == "/results":
		return "Quiz results not found.", "Please complete a quiz first."
	case path == "/quiz", domain.IsCode(err, domain.CodeNavigationState):
		return "No quiz data available.", "Please generate a quiz from the home page."
	default:
		return "Page not found.", "The page you are looking for does not exist."
	}
}
