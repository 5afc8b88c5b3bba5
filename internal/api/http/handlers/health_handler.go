package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-records/internal/persistence"
)

const readinessTimeout = 2 * time.Second

// dependencyCheck pings one backing service the record store needs.
type dependencyCheck struct {
	name string
	ping func(context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	checks      []dependencyCheck
}

// NewHealthHandler wires readiness checks for the account directory
// database and the report cache.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		checks: []dependencyCheck{
			{name: "postgres", ping: postgres.Ping},
			{name: "redis", ping: redis.Ping},
		},
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness by pinging every registered dependency.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true
	for _, check := range h.checks {
		if err := check.ping(ctx); err != nil {
			depStatus[check.name] = err.Error()
			ready = false
			continue
		}
		depStatus[check.name] = "ok"
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": depStatus,
			},
		})
	}

	return c.JSON(fiber.Map{
		"status":       "ready",
		"service":      h.serviceName,
		"dependencies": depStatus,
	})
}
