package rest

import (
	"feedcard/di"
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerEngagementRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	v1.GET("/engagement", handleEngagementCounters(container))
}

func handleEngagementCounters(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		counters, err := container.EngagementUsecase.Counters(c.Request().Context())
		if err != nil {
			return handleError(c, err, "engagement_counters")
		}
		return c.JSON(http.StatusOK, counters)
	}
}
