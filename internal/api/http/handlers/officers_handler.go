package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/service"
	"github.com/resolveit/complaint-sync/internal/store"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

// OfficersHandler serves the officer directory and approval queue.
type OfficersHandler struct {
	sessions *service.SessionService
}

// NewOfficersHandler constructs handler.
func NewOfficersHandler(sessions *service.SessionService) *OfficersHandler {
	return &OfficersHandler{sessions: sessions}
}

// List GET /officers.
func (h *OfficersHandler) List(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": session.Store.Officers()})
}

// Workload GET /officers/:email/workload. Officers may only look at their own.
func (h *OfficersHandler) Workload(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if session.Identity.Role == domain.RoleOfficer && !strings.EqualFold(email, session.Identity.Email) {
		return accessDenied()
	}
	workload := session.Store.OfficerWorkload(email)
	return c.JSON(fiber.Map{"data": fiber.Map{
		"email":    email,
		"workload": workload,
		"total":    workload.Total(),
	}})
}

// Pending GET /officers/pending.
func (h *OfficersHandler) Pending(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	pending, err := session.Store.FetchPendingOfficers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": pending})
}

// Approve POST /officers/pending/:id/approve.
func (h *OfficersHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, (*store.Store).ApproveOfficer)
}

// Reject POST /officers/pending/:id/reject.
func (h *OfficersHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, (*store.Store).RejectOfficer)
}

func (h *OfficersHandler) decide(c *fiber.Ctx, call func(*store.Store, context.Context, int64) error) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid officer id", map[string]any{"id": c.Params("id")})
	}
	if err := call(session.Store, c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"pending":  session.Store.PendingOfficers(),
		"officers": session.Store.Officers(),
	}})
}

// Register POST /officers/register. Multipart with an optional "certificate".
func (h *OfficersHandler) Register(c *fiber.Ctx) error {
	reg := domain.OfficerRegistration{
		Name:       c.FormValue("name"),
		Email:      c.FormValue("email"),
		Password:   c.FormValue("password"),
		Department: c.FormValue("department"),
	}
	if fh, err := c.FormFile("certificate"); err == nil {
		upload, err := readUpload(fh)
		if err != nil {
			return err
		}
		reg.Certificate = &upload
	}
	if err := h.sessions.RegisterOfficer(c.UserContext(), reg); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "pending approval"}})
}
