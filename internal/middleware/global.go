package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/placerate/internal/errs"
	"github.com/deppfellow/placerate/internal/server"
	"github.com/deppfellow/placerate/internal/sqlerr"
)

// GlobalMiddlewares holds the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{server: s}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// ResponseStatus is the status the client receives. When the handler
// returned an error the response is not written yet, so the status is
// taken from the error the way GlobalErrorHandler will.
// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
func ResponseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	}
	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}

// RequestLogger writes one "API" line per request; 5xx at error level and
// 4xx at warn.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status
			if v.Error != nil {
				statusCode = ResponseStatus(c, v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler turns every error into the errs.HTTPError JSON shape.
// The original error is logged; only the sanitized one reaches the client.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusNotFound {
				err = errs.NewNotFoundError("Route not found", false, nil)
			}
		} else {
			err = sqlerr.HandleError(err)
		}
	}

	var echoErr *echo.HTTPError
	var response errs.HTTPError

	switch {
	case errors.As(err, &httpErr):
		response = *httpErr

	case errors.As(err, &echoErr):
		response.Status = echoErr.Code
		response.Code = errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code))
		if msg, ok := echoErr.Message.(string); ok {
			response.Message = msg
		} else {
			response.Message = http.StatusText(echoErr.Code)
		}

	default:
		response = *errs.NewInternalServerError()
	}

	logger := GetLogger(c)
	event := logger.Warn()
	if response.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}
	event.
		Err(originalErr).
		Int("status", response.Status).
		Str("error_code", response.Code).
		Str("kind", string(response.Kind)).
		Msg(response.Message)

	if !c.Response().Committed {
		if err := c.JSON(response.Status, response); err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}
