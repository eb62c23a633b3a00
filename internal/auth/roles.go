package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/view"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

// accessDenied is the fixed body rendered instead of guarded content.
var accessDenied = fiber.Map{"error": fiber.Map{
	"code":    view.AccessDeniedCode,
	"message": view.AccessDeniedMessage,
}}

// RequireRole lets the request through only when the identity's role is in
// allowed. Denied requests never reach the guarded handler.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowed = append([]domain.Role{}, allowed...)
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !view.CanAccess(allowed, identity) {
			return c.Status(http.StatusForbidden).JSON(accessDenied)
		}
		return c.Next()
	}
}

// RequireAction gates a route on the roles allowed to perform a.
func RequireAction(a view.Action) fiber.Handler {
	return RequireRole(view.AllowedRoles(a)...)
}

// RequireAnyRole ensures the caller is authenticated.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
