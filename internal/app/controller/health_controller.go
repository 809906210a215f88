package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/catalog-backend/internal/errors"
	"github.com/ikkim/catalog-backend/internal/middleware"
)

const healthPingTimeout = 2 * time.Second

// Pinger checks that the database answers.
type Pinger func(ctx context.Context) error

type HealthController struct {
	ping Pinger
}

func NewHealthController(ping Pinger) *HealthController {
	return &HealthController{ping: ping}
}

// Health reports liveness and database reachability
// GET /health
func (ctrl *HealthController) Health(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := ctrl.ping(ctx); err != nil {
		log.Error("Database health check failed", err, nil)
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.InternalStorageUnavailable, "Database unavailable")
		return
	}

	apperrors.RespondSuccess(c, gin.H{
		"status":   "ok",
		"database": "connected",
	})
}
