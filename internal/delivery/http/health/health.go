package http_health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Prober interface {
	Probe(ctx context.Context) error
}

type HealthResponseDTO struct {
	Success  bool   `json:"success" example:"true"`
	Status   string `json:"status" example:"healthy"`
	Database string `json:"database,omitempty" example:"connected"`
	Error    string `json:"error,omitempty"`
}

type Controller struct {
	prober Prober
	logger *slog.Logger
}

func New(prober Prober) *Controller {
	return &Controller{
		prober: prober,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.health)
}

// @Summary Liveness and database reachability
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponseDTO
// @Failure 500 {object} HealthResponseDTO
// @Router /health [get]
func (c *Controller) health(ctx *gin.Context) {
	if err := c.prober.Probe(ctx.Request.Context()); err != nil {
		c.logger.Error("health check failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, HealthResponseDTO{
			Success: false,
			Status:  "unhealthy",
			Error:   err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, HealthResponseDTO{Success: true, Status: "healthy", Database: "connected"})
}
