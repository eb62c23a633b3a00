package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/resolveit/complaint-sync/internal/auth"
	"github.com/resolveit/complaint-sync/internal/service"
	"github.com/resolveit/complaint-sync/internal/view"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

func currentSession(c *fiber.Ctx, sessions *service.SessionService) (*service.Session, error) {
	session, ok := sessions.Session(auth.TokenFromContext(c))
	if !ok {
		return nil, apperrors.NewUnauthorized("session required")
	}
	return session, nil
}

func complaintID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid complaint id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func accessDenied() error {
	return apperrors.NewDomainError(apperrors.CodeAccessDenied, view.AccessDeniedMessage, http.StatusForbidden, nil)
}
