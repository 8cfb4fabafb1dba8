package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-track/attendance-service/internal/cache"
	"github.com/campus-track/attendance-service/internal/repositories"
	"github.com/campus-track/attendance-service/internal/utils"
)

type HealthHandler struct {
	BaseHandler
	repoManager repositories.RepositoryManager
	cache       *cache.CacheHelper
}

func NewHealthHandler(repoManager repositories.RepositoryManager, cacheHelper *cache.CacheHelper, logger utils.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(logger),
		repoManager: repoManager,
		cache:       cacheHelper,
	}
}

// Check reports service health. The database is required; redis is an
// optional dependency and only degrades the status.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	status := http.StatusOK
	checks := gin.H{}

	if err := h.repoManager.HealthCheck(ctx); err != nil {
		checks["database"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "up"
	}

	switch err := h.cache.HealthCheck(ctx); {
	case err == nil:
		checks["redis"] = "up"
	case errors.Is(err, cache.ErrCacheNotAvailable):
		checks["redis"] = "not configured"
	default:
		checks["redis"] = "down"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"service":   "attendance-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}
