package server

import (
	"log/slog"

	"bookstore/internal/config"
	"bookstore/internal/metrics"
	"bookstore/internal/middleware"
	"bookstore/internal/validator"

	"github.com/labstack/echo/v4"
)

func New(cfg config.Config, log *slog.Logger, m *metrics.ServerMetrics, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	e.Use(middleware.RequestLogger(log))
	e.Use(metrics.Middleware(m))

	RegisterRoutes(e, cfg, h)

	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
