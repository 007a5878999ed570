package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler instance. redisClient may be
// nil when the cache is disabled.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Check godoc
// @Summary Health check
// @Description Check service and dependency health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := gin.H{"status": "healthy"}

	if h.db != nil {
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			components["database"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			components["database"] = "up"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			components["redis"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			components["redis"] = "up"
		}
	}

	if status != http.StatusOK {
		components["status"] = "degraded"
	}
	c.JSON(status, components)
}
