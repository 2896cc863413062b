package middleware

import (
	"time"

	"court-watcher/core/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// Setup attaches the global middleware chain.
func (m *Middleware) Setup(e *echo.Echo) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(m.RequestLogger())
}

// RequestLogger logs one line per request with method, path, status and latency.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("Request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}
