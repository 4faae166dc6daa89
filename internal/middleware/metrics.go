package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/placerate/internal/metrics"
)

// RequestMetrics records count and latency per route template. Requests
// that matched no route are grouped under "unmatched".
func RequestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "unmatched"
			}
			metrics.RecordAPIRequest(c.Request().Method, endpoint, ResponseStatus(c, err), time.Since(start))

			return err
		}
	}
}
