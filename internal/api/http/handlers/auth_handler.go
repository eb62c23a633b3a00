package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/resolveit/complaint-sync/internal/api/dto"
	"github.com/resolveit/complaint-sync/internal/auth"
	"github.com/resolveit/complaint-sync/internal/normalize"
	"github.com/resolveit/complaint-sync/internal/service"
	"github.com/resolveit/complaint-sync/internal/view"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

// AuthHandler exposes login, registration and session endpoints.
type AuthHandler struct {
	sessions *service.SessionService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	session, err := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	role := normalize.Role(req.Role)
	if req.Role != "" && role == "" {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
	}
	session, err := h.sessions.Register(c.UserContext(), req.Name, req.Email, req.Password, role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(session)})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	return c.JSON(fiber.Map{"data": dto.NewIdentityResponse(identity)})
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.UserContext(), auth.TokenFromContext(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// RequestPasswordReset POST /auth/password-reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.sessions.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "requested"}})
}

// ResetPassword POST /auth/password-reset.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.PasswordResetApply
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.sessions.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "reset"}})
}

func sessionResponse(session *service.Session) dto.SessionResponse {
	dashboard, _ := view.DashboardFor(session.Identity)
	resp := dto.SessionResponse{
		Token:      session.Identity.Token,
		User:       dto.NewIdentityResponse(session.Identity),
		Dashboard:  dashboard,
		Complaints: len(session.Store.Complaints()),
	}
	if !session.ExpiresAt.IsZero() {
		exp := session.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return resp
}
