package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/airport-dashboard/internal/persistence"
)

// HealthHandler exposes liveness/readiness probes.
type HealthHandler struct {
	pg    *persistence.Postgres
	redis *persistence.Redis
}

// NewHealthHandler constructs handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready reports backing-store readiness. Redis is advisory, so only the
// database gates readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	dbStatus := "connected"
	if h.pg == nil || h.pg.PoolHandle() == nil {
		dbStatus = "disconnected"
	} else if err := h.pg.PoolHandle().Ping(c.Context()); err != nil {
		dbStatus = "disconnected"
	}

	redisStatus := "connected"
	if err := h.redis.Ping(c.Context()); err != nil {
		redisStatus = "disconnected"
	}

	status := http.StatusOK
	if dbStatus != "connected" {
		status = http.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
