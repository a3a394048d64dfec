package config

import (
	"fmt"
	"slices"
	"strings"
)

// validateConfig validates the loaded configuration values
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateRenderConfig(&config.Render); err != nil {
		return fmt.Errorf("render config validation failed: %w", err)
	}

	if err := validateImageConfig(&config.Image); err != nil {
		return fmt.Errorf("image config validation failed: %w", err)
	}

	if err := validateEngagementConfig(config); err != nil {
		return fmt.Errorf("engagement config validation failed: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

func validateServerConfig(config *ServerConfig) error {
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.ReadTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got ReadTimeout: %v", config.ReadTimeout)
	}

	if config.WriteTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got WriteTimeout: %v", config.WriteTimeout)
	}

	if config.IdleTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got IdleTimeout: %v", config.IdleTimeout)
	}

	return nil
}

func validateRenderConfig(config *RenderConfig) error {
	if config.ImageWait < 0 {
		return fmt.Errorf("image wait must not be negative, got %v", config.ImageWait)
	}
	if strings.TrimSpace(config.PromotedLabel) == "" {
		return fmt.Errorf("promoted label must be provided")
	}
	return nil
}

func validateImageConfig(config *ImageConfig) error {
	if config.MaxBytes <= 0 {
		return fmt.Errorf("max bytes must be positive, got %d", config.MaxBytes)
	}
	if config.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %v", config.FetchTimeout)
	}
	if config.MaxWidth <= 0 {
		return fmt.Errorf("max width must be positive, got %d", config.MaxWidth)
	}
	if config.MaxPixels <= 0 {
		return fmt.Errorf("max pixels must be positive, got %d", config.MaxPixels)
	}
	if config.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", config.CacheSize)
	}
	if config.MaxConcurrent <= 0 {
		return fmt.Errorf("max concurrent must be positive, got %d", config.MaxConcurrent)
	}
	if config.HostInterval < 0 {
		return fmt.Errorf("host interval must not be negative, got %v", config.HostInterval)
	}
	return nil
}

func validateEngagementConfig(config *Config) error {
	eng := &config.Engagement

	validStores := []string{StoreMemory, StoreRedis, StorePostgres}
	store := strings.ToLower(eng.Store)
	if !slices.Contains(validStores, store) {
		return fmt.Errorf("store must be one of: %s, got %s", strings.Join(validStores, ", "), eng.Store)
	}
	eng.Store = store

	if eng.MilestoneInterval < 1 {
		return fmt.Errorf("milestone interval must be at least 1, got %d", eng.MilestoneInterval)
	}

	if store == StorePostgres && strings.TrimSpace(config.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL is required for the postgres store")
	}

	if (store == StoreRedis || eng.PublishEvents) && strings.TrimSpace(config.Redis.URL) == "" {
		return fmt.Errorf("REDIS_URL is required for the redis store and event publishing")
	}

	if eng.PublishEvents && strings.TrimSpace(eng.EventStream) == "" {
		return fmt.Errorf("event stream must be provided when publishing events")
	}

	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	level := strings.ToLower(config.Level)

	if !slices.Contains(validLevels, level) {
		return fmt.Errorf("log level must be one of: %s, got %s",
			strings.Join(validLevels, ", "), config.Level)
	}

	validFormats := []string{"json", "text"}
	format := strings.ToLower(config.Format)

	if !slices.Contains(validFormats, format) {
		return fmt.Errorf("log format must be one of: %s, got %s",
			strings.Join(validFormats, ", "), config.Format)
	}

	return nil
}
