package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resolveit/complaint-sync/internal/service"
	"github.com/resolveit/complaint-sync/internal/view"
)

// AnalyticsHandler serves admin aggregates.
type AnalyticsHandler struct {
	sessions *service.SessionService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(sessions *service.SessionService) *AnalyticsHandler {
	return &AnalyticsHandler{sessions: sessions}
}

// Overview GET /analytics/overview, computed by the remote service.
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	overview, err := session.Store.AnalyticsOverview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": overview})
}

// Local GET /analytics/local, computed from the session's working set.
func (h *AnalyticsHandler) Local(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view.Overview(session.Store.Complaints(), session.Store.Officers())})
}
