package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/libreria/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// healthTimeout bounds each dependency check
const healthTimeout = 2 * time.Second

// HealthCheck pings one dependency
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler reports the state of the service's dependencies
type HealthHandler struct {
	checks    []HealthCheck
	startTime time.Time
}

// NewHealthHandler creates a handler running the given checks in order
func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks:    checks,
		startTime: time.Now(),
	}
}

// Health handles GET /health. Any failing check turns the response into a
// 503.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	components := make(gin.H, len(h.checks))
	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		err := check.Ping(ctx)
		cancel()

		if err != nil {
			logger.L(c.Request.Context()).Warn("health check failed",
				zap.String("component", check.Name),
				zap.Error(err),
			)
			components[check.Name] = "error"
			status = http.StatusServiceUnavailable
			continue
		}
		components[check.Name] = "ok"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":     overall,
		"time":       time.Now().Format(time.RFC3339),
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
		"components": components,
	})
}
