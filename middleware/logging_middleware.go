package middleware

import (
	"feedcard/utils/logger"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

func LoggingMiddleware(baseLogger *slog.Logger) echo.MiddlewareFunc {
	contextLogger := logger.NewContextLogger(baseLogger)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			// Probes are too noisy to log
			if req.URL.Path == "/v1/health" || req.URL.Path == "/metrics" {
				return next(c)
			}
			ctx := req.Context()

			err := next(c)
			duration := time.Since(start)

			res := c.Response()
			logAttrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"duration_ms", duration.Milliseconds(),
				"response_size", res.Size,
			}
			switch {
			case res.Status >= 500:
				contextLogger.WithContext(ctx).ErrorContext(ctx, "request completed", logAttrs...)
			case res.Status >= 400:
				contextLogger.WithContext(ctx).WarnContext(ctx, "request completed", logAttrs...)
			default:
				contextLogger.WithContext(ctx).InfoContext(ctx, "request completed", logAttrs...)
			}

			if err != nil {
				contextLogger.WithContext(ctx).ErrorContext(ctx, "request error",
					"method", req.Method,
					"path", req.URL.Path,
					"error", err,
					"duration_ms", duration.Milliseconds(),
				)
			}

			return err
		}
	}
}
