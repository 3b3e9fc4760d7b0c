package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/yigit/studentrecords/internal/app/models/dto"
)

// HealthController reports whether the store is reachable
type HealthController struct {
	db *sqlx.DB
}

// NewHealthController creates a new HealthController
func NewHealthController(db *sqlx.DB) *HealthController {
	return &HealthController{db: db}
}

// Check pings the store
// GET /healthz
func (c *HealthController) Check(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	store := c.db.DriverName()
	if err := c.db.PingContext(pingCtx); err != nil {
		log.Warn().Err(err).Msg("Health check ping failed")
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Store: store})
		return
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Store: store})
}
