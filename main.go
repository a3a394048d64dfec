package main

import (
	"context"
	"errors"
	"feedcard/config"
	"feedcard/di"
	"feedcard/rest"
	"feedcard/utils/logger"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.InitLogger(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("Starting server",
		"port", cfg.Server.Port,
		"engagement_store", cfg.Engagement.Store,
		"strict_contracts", cfg.Render.StrictContracts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewApplicationComponents(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to build application", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout
	rest.RegisterRoutes(e, container, cfg)

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Error starting server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
}
