// Package router builds the echo instance: JSON codec, middleware chain,
// error handler and every route.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/placerate/internal/handler"
	"github.com/deppfellow/placerate/internal/middleware"
	"github.com/deppfellow/placerate/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.JSONSerializer = jsonSerializer{}
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id and New Relic transaction must exist
	// before the context logger, and the logger before anything that logs.
	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middleware.RequestMetrics(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerUserRoutes(api, h)
	registerPlaceRoutes(api, h)
	registerRatingRoutes(api, h)

	return router
}
