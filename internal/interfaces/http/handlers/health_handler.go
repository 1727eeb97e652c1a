package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"legalease.backend/internal/config"
	"legalease.backend/pkg/logger"
)

// HealthHandler reports environment validity and database reachability
type HealthHandler struct {
	lookup  config.LookupFunc
	ping    func(ctx context.Context) error
	version string
}

// NewHealthHandler creates a health handler. ping may be nil.
func NewHealthHandler(lookup config.LookupFunc, ping func(ctx context.Context) error, version string) *HealthHandler {
	return &HealthHandler{lookup: lookup, ping: ping, version: version}
}

// Check
// GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	env := config.ValidateEnv(h.lookup)

	database := "skipped"
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			logger.Warn(c.Request.Context(), "Health check database ping failed", zap.Error(err))
			database = "unreachable"
		} else {
			database = "ok"
		}
	}

	status, code := "healthy", http.StatusOK
	if !env.Valid || database == "unreachable" {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"env":       env,
		"database":  database,
	})
}
