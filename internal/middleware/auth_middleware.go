package middleware

import (
	"eduquiz-web/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SignInPath is where unauthenticated visitors of protected views are sent.
const SignInPath = "/signin"

// Protected redirects unauthenticated requests to the sign-in view. It must
// run after Session.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !AuthState(c).Authenticated {
			logger.Get().Debug("Protected: redirecting anonymous visitor", zap.String("path", c.Path()))
			return c.Redirect(SignInPath, fiber.StatusFound)
		}
		return c.Next()
	}
}
