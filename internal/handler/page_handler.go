package handler

import (
	"context"
	"time"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PageHandler serves the landing page and the health check.
type PageHandler struct {
	store domain.SessionStore
}

func NewPageHandler(store domain.SessionStore) *PageHandler {
	return &PageHandler{store: store}
}

// Landing renders the public home page.
func (h *PageHandler) Landing(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, viewLanding, fiber.Map{})
}

// Healthz reports whether the session store is reachable.
func (h *PageHandler) Healthz(c *fiber.Ctx) error {
	pinger, ok := h.store.(domain.Pinger)
	if !ok {
		return c.JSON(fiber.Map{"status": "ok"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := pinger.Ping(ctx); err != nil {
		logger.Get().Warn("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
