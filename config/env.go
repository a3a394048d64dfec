package config

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// envBinding ties one config field to its environment variable and default.
type envBinding struct {
	env    string
	def    string
	target any
}

func envBindings(c *Config) []envBinding {
	return []envBinding{
		{"SERVER_PORT", "9300", &c.Server.Port},
		{"SERVER_READ_TIMEOUT", "30s", &c.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", "30s", &c.Server.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", "120s", &c.Server.IdleTimeout},

		{"RENDER_STRICT_CONTRACTS", "false", &c.Render.StrictContracts},
		{"RENDER_IMAGE_WAIT", "3s", &c.Render.ImageWait},
		{"RENDER_TOP_NEWS_LABEL", "Top News", &c.Render.TopNewsLabel},
		{"RENDER_PROMOTED_LABEL", "Promoted", &c.Render.PromotedLabel},
		{"RENDER_SPONSOR_LOGO_ASSET", "brave_news_sponsor_logo", &c.Render.SponsorLogoAsset},

		{"IMAGE_MAX_BYTES", "5242880", &c.Image.MaxBytes},
		{"IMAGE_FETCH_TIMEOUT", "15s", &c.Image.FetchTimeout},
		{"IMAGE_MAX_WIDTH", "600", &c.Image.MaxWidth},
		{"IMAGE_MAX_PIXELS", "40000000", &c.Image.MaxPixels},
		{"IMAGE_CACHE_SIZE", "256", &c.Image.CacheSize},
		{"IMAGE_MAX_CONCURRENT", "8", &c.Image.MaxConcurrent},
		{"IMAGE_HOST_INTERVAL", "50ms", &c.Image.HostInterval},
		{"IMAGE_ALLOW_PRIVATE_HOSTS", "false", &c.Image.AllowPrivateHosts},

		{"ENGAGEMENT_STORE", StoreMemory, &c.Engagement.Store},
		{"ENGAGEMENT_MILESTONE_INTERVAL", "4", &c.Engagement.MilestoneInterval},
		{"ENGAGEMENT_KEY_PREFIX", "feedcard", &c.Engagement.KeyPrefix},
		{"ENGAGEMENT_EVENT_STREAM", "feedcard:engagement", &c.Engagement.EventStream},
		{"ENGAGEMENT_PUBLISH_EVENTS", "false", &c.Engagement.PublishEvents},

		{"REDIS_URL", "redis://localhost:6379/0", &c.Redis.URL},

		{"DATABASE_URL", "", &c.Database.URL},
		{"DB_MAX_CONNECTIONS", "10", &c.Database.MaxConnections},
		{"DB_CONNECTION_TIMEOUT", "10s", &c.Database.ConnectionTimeout},

		{"LOG_LEVEL", "info", &c.Logging.Level},
		{"LOG_FORMAT", "json", &c.Logging.Format},
	}
}

// loadFromEnvironment fills config from the process environment. Unset or
// empty variables fall back to their defaults.
func loadFromEnvironment(config *Config) error {
	v := viper.New()
	v.AutomaticEnv()

	for _, b := range envBindings(config) {
		v.SetDefault(b.env, b.def)
		if err := assign(b.target, v.GetString(b.env), b.env); err != nil {
			return err
		}
	}
	return nil
}

func assign(target any, value, envName string) error {
	switch t := target.(type) {
	case *string:
		*t = value
	case *bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", envName, value)
		}
		*t = b
	case *int:
		n, err := cast.ToIntE(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", envName, value)
		}
		*t = n
	case *time.Duration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", envName, value)
		}
		*t = d
	default:
		return fmt.Errorf("unsupported field type %T for %s", target, envName)
	}
	return nil
}
