package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/pkg/router"
)

type healthResponse struct {
	Database string `json:"database" example:"ok"`
	Redis    string `json:"redis,omitempty" example:"ok"`
}

func (healthResponse) Message() string { return "Service is healthy" }

// health reports liveness of the service and its storage dependencies.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} router.successResponse{data=healthResponse} "Healthy"
// @Failure 503 {object} router.errorResponse "A dependency is unreachable"
// @Router /health [get]
func (a *App) health(r *router.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Database: "ok"}

	if err := a.dbConn.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "health check failed", "name", "database", "error", err)
		return nil, goerror.NewDependency(err, "Service is unhealthy", goerror.CodeUnavailable)
	}

	if a.cacheConn != nil {
		if err := a.cacheConn.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "health check failed", "name", "redis", "error", err)
			return nil, goerror.NewDependency(err, "Service is unhealthy", goerror.CodeUnavailable)
		}
		resp.Redis = "ok"
	}

	return resp, nil
}
