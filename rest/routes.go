package rest

import (
	"feedcard/config"
	"feedcard/di"
	middleware_custom "feedcard/middleware"
	"feedcard/utils/logger"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBody = "2M"

func RegisterRoutes(e *echo.Echo, container *di.ApplicationComponents, cfg *config.Config) {
	e.Use(middleware_custom.RequestIDMiddleware())
	e.Use(middleware.Recover())
	e.Use(middleware_custom.LoggingMiddleware(logger.Logger))
	e.Use(middleware.BodyLimit(maxRequestBody))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")
	v1.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	registerCardRoutes(v1, container, cfg)
	registerEngagementRoutes(v1, container)
}
