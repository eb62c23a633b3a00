package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resolveit/complaint-sync/internal/service"
)

// AlertsHandler hands out a session's pending failure notifications.
type AlertsHandler struct {
	sessions *service.SessionService
}

// NewAlertsHandler constructs handler.
func NewAlertsHandler(sessions *service.SessionService) *AlertsHandler {
	return &AlertsHandler{sessions: sessions}
}

// Drain GET /alerts. Each alert is returned once.
func (h *AlertsHandler) Drain(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": session.Alerts.Drain()})
}
