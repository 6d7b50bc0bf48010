package middlewares

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const loggerKey = "logger"

// RequestLogger stores a logger scoped to the request on the context. It must
// run after the request id middleware.
func RequestLogger(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(loggerKey, l.With(
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
			))
			return next(c)
		}
	}
}

// Logger returns the request's logger, falling back to l.
func Logger(c echo.Context, l *zap.Logger) *zap.Logger {
	if rl, ok := c.Get(loggerKey).(*zap.Logger); ok {
		return rl
	}
	return l
}
