package middleware

import (
	"time"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/service"
	"eduquiz-web/internal/util"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionIDKey = "sessionID" // Key for storing the session id in fiber.Ctx locals
	AuthStateKey = "authState" // Key for storing the domain.AuthState snapshot
)

// SessionConfig controls the session-id cookie.
type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Session identifies the browser profile by a ULID cookie, issuing one when
// absent or malformed, and stores the hydrated AuthState in locals.
func Session(gate *service.AuthGate, cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cfg.CookieName)
		if !util.IsULID(sid) {
			sid = util.NewULID()
			c.Cookie(&fiber.Cookie{
				Name:     cfg.CookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				Secure:   cfg.Secure,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(SessionIDKey, sid)
		c.Locals(AuthStateKey, gate.Hydrate(c.UserContext(), sid))
		return c.Next()
	}
}

// SessionID returns the session id set by Session, or "".
func SessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(SessionIDKey).(string)
	return sid
}

// AuthState returns the snapshot set by Session, or the anonymous state.
func AuthState(c *fiber.Ctx) domain.AuthState {
	state, ok := c.Locals(AuthStateKey).(domain.AuthState)
	if !ok {
		return domain.Anonymous()
	}
	return state
}

// SetAuthState replaces the snapshot for the rest of the request, after a
// login or logout changed it.
func SetAuthState(c *fiber.Ctx, state domain.AuthState) {
	c.Locals(AuthStateKey, state)
}
