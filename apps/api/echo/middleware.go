package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// metricsMiddleware counts requests per route and status.
func metricsMiddleware(m *metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			err := next(ctx)
			if err != nil {
				ctx.Error(err) // let the error handler pick the status
			}
			status := strconv.Itoa(ctx.Response().Status)
			m.requests.WithLabelValues(ctx.Request().Method, ctx.Path(), status).Inc()
			return nil
		}
	}
}
