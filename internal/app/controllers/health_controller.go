package controllers

import (
	"census-otp-service/internal/domain/services/container"
	"census-otp-service/internal/error/code"
	"census-otp-service/internal/error/response"
	"census-otp-service/internal/infrastructure/database"
	Logger "census-otp-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HealthController reports liveness and dependency health
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// HandleHealthFunc returns a gin handler for the named health method
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := &HealthController{Ctx: ctx, Container: container}

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method")
		}
	}
}

// Ping is the liveness probe
// @Summary  Liveness probe
// @Tags     Health
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Router   /ping [get]
func (h *HealthController) Ping() {
	response.Success(h.Ctx, "pong", gin.H{"status": "healthy"})
}

// Status pings the database and reports pool and cache statistics
// @Summary  Dependency status
// @Tags     Health
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Failure  503  {object}  ErrorResponse
// @Router   /health/status [get]
func (h *HealthController) Status() {
	db := h.Container.GetDB()
	if err := database.Ping(h.Ctx.Request.Context(), db); err != nil {
		Logger.Error("Database health check failed: %v", err)
		response.FailWithMessage(h.Ctx, code.ErrServiceUnavailable, "Database unavailable")
		return
	}

	stats, err := database.PoolStats(db)
	if err != nil {
		stats = map[string]interface{}{"error": err.Error()}
	}

	response.Success(h.Ctx, "ok", gin.H{
		"status":   "healthy",
		"database": stats,
		"cache":    h.Container.GetCache().Stats(),
	})
}
