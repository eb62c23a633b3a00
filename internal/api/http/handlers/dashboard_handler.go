package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resolveit/complaint-sync/internal/api/dto"
	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/service"
	"github.com/resolveit/complaint-sync/internal/view"
)

const recentComplaints = 5

// DashboardHandler composes the role-selected dashboard.
type DashboardHandler struct {
	sessions *service.SessionService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(sessions *service.SessionService) *DashboardHandler {
	return &DashboardHandler{sessions: sessions}
}

// Get GET /dashboard.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	dashboard, ok := view.DashboardFor(session.Identity)
	if !ok {
		return accessDenied()
	}

	complaints := session.Store.Complaints()
	recent := complaints
	if len(recent) > recentComplaints {
		recent = recent[:recentComplaints]
	}
	resp := dto.DashboardResponse{
		User:      dto.NewIdentityResponse(session.Identity),
		Dashboard: dashboard,
		Stats:     view.ComputeStats(complaints),
		Recent:    view.ProjectAll(recent, session.Identity),
		Alerts:    session.Alerts.Drain(),
	}
	if session.Identity.Role == domain.RoleOfficer {
		workload := view.ComputeWorkload(complaints, session.Identity.Email)
		resp.Workload = &workload
	}
	return c.JSON(fiber.Map{"data": resp})
}
