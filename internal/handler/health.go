package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/placerate/internal/middleware"
	"github.com/deppfellow/placerate/internal/server"
)

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// CheckHealth pings the database and redis. Only the database decides the
// overall status; redis backs the optional e-mail queue.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]HealthCheck),
	}

	dbCheck := h.ping(ctx, &logger, "database", func(ctx context.Context) error {
		return h.server.DB.Pool.Ping(ctx)
	})
	response.Checks["database"] = dbCheck

	if h.server.Redis != nil {
		response.Checks["redis"] = h.ping(ctx, &logger, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if h.server.Job != nil {
		response.Checks["email_jobs"] = HealthCheck{Status: "enabled"}
	} else {
		response.Checks["email_jobs"] = HealthCheck{Status: "disabled"}
	}

	if dbCheck.Status != "healthy" {
		response.Status = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordFailure("overall", map[string]interface{}{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) ping(ctx context.Context, logger *zerolog.Logger, name string, fn func(context.Context) error) HealthCheck {
	checkStart := time.Now()
	err := fn(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")
		h.recordFailure(name, map[string]interface{}{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return HealthCheck{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}

	return HealthCheck{Status: "healthy", ResponseTime: elapsed.String()}
}

func (h *HealthHandler) recordFailure(checkType string, attrs map[string]interface{}) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	attrs["check_type"] = checkType
	attrs["operation"] = "health_check"
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
}
