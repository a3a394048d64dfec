package config

import (
	"time"
)

// Engagement store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Render     RenderConfig     `json:"render"`
	Image      ImageConfig      `json:"image"`
	Engagement EngagementConfig `json:"engagement"`
	Redis      RedisConfig      `json:"redis"`
	Database   DatabaseConfig   `json:"database"`
	Logging    LoggingConfig    `json:"logging"`
}

type ServerConfig struct {
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// RenderConfig controls card composition. StrictContracts turns contract
// violations (unknown card types) into panics; leave it off in production.
type RenderConfig struct {
	StrictContracts  bool          `json:"strict_contracts"`
	ImageWait        time.Duration `json:"image_wait"`
	TopNewsLabel     string        `json:"top_news_label"`
	PromotedLabel    string        `json:"promoted_label"`
	SponsorLogoAsset string        `json:"sponsor_logo_asset"`
}

type ImageConfig struct {
	MaxBytes          int           `json:"max_bytes"`
	FetchTimeout      time.Duration `json:"fetch_timeout"`
	MaxWidth          int           `json:"max_width"`
	MaxPixels         int           `json:"max_pixels"`
	CacheSize         int           `json:"cache_size"`
	MaxConcurrent     int           `json:"max_concurrent"`
	HostInterval      time.Duration `json:"host_interval"`
	AllowPrivateHosts bool          `json:"allow_private_hosts"`
}

type EngagementConfig struct {
	Store             string `json:"store"`
	MilestoneInterval int    `json:"milestone_interval"`
	KeyPrefix         string `json:"key_prefix"`
	EventStream       string `json:"event_stream"`
	PublishEvents     bool   `json:"publish_events"`
}

type RedisConfig struct {
	URL string `json:"url"`
}

type DatabaseConfig struct {
	URL               string        `json:"url"`
	MaxConnections    int           `json:"max_connections"`
	ConnectionTimeout time.Duration `json:"connection_timeout"`
}

type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// NewConfig creates a new configuration by loading from environment variables
// with fallback to default values
func NewConfig() (*Config, error) {
	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Load is an alias for NewConfig
func Load() (*Config, error) {
	return NewConfig()
}
