package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/resolveit/complaint-sync/internal/service"
)

const cachePingTimeout = 2 * time.Second

// CachePinger is the snapshot cache as seen by readiness checks.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports gateway liveness and readiness.
type HealthHandler struct {
	serviceName string
	version     string
	cache       CachePinger
	sessions    *service.SessionService
}

// NewHealthHandler returns a new handler instance. cache is nil when snapshots
// are disabled.
func NewHealthHandler(serviceName, version string, cache CachePinger, sessions *service.SessionService) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, cache: cache, sessions: sessions}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready GET /health/ready. Sessions keep working without the snapshot cache,
// so an unreachable cache reports "degraded" rather than failing the check.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	status, cache := "ready", "disabled"
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), cachePingTimeout)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			status, cache = "degraded", err.Error()
		} else {
			cache = "ok"
		}
	}
	return c.JSON(fiber.Map{
		"status":        status,
		"sessions":      h.sessions.Count(),
		"snapshotCache": cache,
	})
}
