package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deppfellow/placerate/internal/handler"
	"github.com/deppfellow/placerate/static"
)

// registerSystemRoutes registers health, metrics and docs. None of them
// are rate limited.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	r.StaticFS("/static", static.Files)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
