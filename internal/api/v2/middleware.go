// internal/api/v2/middleware.go
package api

import (
	"time"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and durations per route.
func (c *Controller) MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			// Use the route template, not the raw URL, to keep label
			// cardinality bounded
			path := ctx.Path()
			if path == "" {
				path = "unmatched"
			}

			status := ctx.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			c.metrics.HTTP.RecordRequest(ctx.Request().Method, path, status, time.Since(start))
			return err
		}
	}
}
