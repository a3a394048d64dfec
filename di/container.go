package di

import (
	"context"
	"feedcard/config"
	"feedcard/domain"
	"feedcard/driver/memory_driver"
	"feedcard/driver/pg_driver"
	"feedcard/driver/redis_driver"
	"feedcard/driver/render_loop"
	"feedcard/gateway/counter_store_gateway"
	"feedcard/gateway/engagement_event_gateway"
	"feedcard/gateway/image_decode_gateway"
	"feedcard/gateway/image_fetch_gateway"
	"feedcard/gateway/text_measure_gateway"
	"feedcard/usecase/card_layout_usecase"
	"feedcard/usecase/engagement_usecase"
	"feedcard/usecase/feed_item_usecase"
	"feedcard/usecase/image_resolve_usecase"
	"feedcard/usecase/slot_bind_usecase"
	"feedcard/utils/rate_limiter"
	"fmt"
	"log/slog"
	"net/http"
)

const renderQueueSize = 256

type ApplicationComponents struct {
	Config *config.Config

	RenderLoop          *render_loop.RenderLoop
	FeedItemUsecase     *feed_item_usecase.FeedItemUsecase
	SlotBindUsecase     *slot_bind_usecase.SlotBindUsecase
	CardLayoutUsecase   *card_layout_usecase.CardLayoutUsecase
	ImageResolveUsecase *image_resolve_usecase.ImageResolveUsecase
	Composer            *card_layout_usecase.Composer
	EngagementUsecase   *engagement_usecase.EngagementUsecase

	redisDriver *redis_driver.RedisDriver
	pgDriver    *pg_driver.PgDriver
	logger      *slog.Logger
}

// NewApplicationComponents wires every layer for cfg. The counter backend is
// chosen by cfg.Engagement.Store and is checked for reachability here.
func NewApplicationComponents(ctx context.Context, cfg *config.Config, log *slog.Logger) (*ApplicationComponents, error) {
	c := &ApplicationComponents{Config: cfg, logger: log}

	counterDriver, err := c.counterDriver(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	counterStore := counter_store_gateway.NewCounterStoreGateway(counterDriver, cfg.Engagement.Store)

	var streamDriver engagement_event_gateway.StreamDriver
	if cfg.Engagement.PublishEvents {
		if c.redisDriver == nil {
			if c.redisDriver, err = c.connectRedis(ctx); err != nil {
				c.Close()
				return nil, err
			}
		}
		streamDriver = c.redisDriver
	}
	eventGateway := engagement_event_gateway.NewEngagementEventGateway(streamDriver, cfg.Engagement.EventStream, log)

	c.RenderLoop = render_loop.NewRenderLoop(renderQueueSize)
	c.FeedItemUsecase = feed_item_usecase.NewFeedItemUsecase()
	c.SlotBindUsecase = slot_bind_usecase.NewSlotBindUsecase(cfg.Render.SponsorLogoAsset)
	c.CardLayoutUsecase = card_layout_usecase.NewCardLayoutUsecase(
		c.FeedItemUsecase,
		c.SlotBindUsecase,
		text_measure_gateway.NewTextMeasureGateway(text_measure_gateway.DefaultMetrics()),
		card_layout_usecase.Options{
			StrictContracts: cfg.Render.StrictContracts,
			TopNewsLabel:    cfg.Render.TopNewsLabel,
			PromotedLabel:   cfg.Render.PromotedLabel,
		},
		log,
	)

	fetchGateway := image_fetch_gateway.NewImageFetchGateway(
		&http.Client{Timeout: cfg.Image.FetchTimeout},
		rate_limiter.NewHostRateLimiter(cfg.Image.HostInterval, 1),
		cfg.Image.AllowPrivateHosts,
	)
	c.ImageResolveUsecase = image_resolve_usecase.NewImageResolveUsecase(
		fetchGateway,
		image_decode_gateway.NewImageDecodeGateway(cfg.Image.MaxWidth, cfg.Image.MaxPixels),
		c.RenderLoop,
		image_resolve_usecase.Options{
			MaxConcurrent: cfg.Image.MaxConcurrent,
			CacheSize:     cfg.Image.CacheSize,
			Fetch: domain.ImageFetchOptions{
				MaxSize: cfg.Image.MaxBytes,
				Timeout: cfg.Image.FetchTimeout,
			},
		},
		log,
	)
	c.Composer = card_layout_usecase.NewComposer(c.CardLayoutUsecase, c.FeedItemUsecase, c.ImageResolveUsecase, log)
	c.EngagementUsecase = engagement_usecase.NewEngagementUsecase(counterStore, eventGateway, cfg.Engagement.MilestoneInterval, log)

	return c, nil
}

func (c *ApplicationComponents) counterDriver(ctx context.Context) (counter_store_gateway.CounterDriver, error) {
	switch c.Config.Engagement.Store {
	case config.StoreRedis:
		driver, err := c.connectRedis(ctx)
		if err != nil {
			return nil, err
		}
		c.redisDriver = driver
		return driver, nil
	case config.StorePostgres:
		pool, err := pg_driver.Connect(ctx, c.Config.Database.URL, c.Config.Database.MaxConnections, c.Config.Database.ConnectionTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.pgDriver = pg_driver.NewPgDriver(pool)
		if err := c.pgDriver.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return c.pgDriver, nil
	default:
		return memory_driver.NewMemoryDriver(), nil
	}
}

func (c *ApplicationComponents) connectRedis(ctx context.Context) (*redis_driver.RedisDriver, error) {
	driver, err := redis_driver.NewRedisDriverWithURL(c.Config.Redis.URL, c.Config.Engagement.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	if err := driver.Ping(ctx); err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return driver, nil
}

// Close drains in-flight image work before stopping the render loop, then
// releases store connections.
func (c *ApplicationComponents) Close() {
	if c.ImageResolveUsecase != nil {
		c.ImageResolveUsecase.Wait()
	}
	if c.RenderLoop != nil {
		c.RenderLoop.Close()
	}
	if c.redisDriver != nil {
		if err := c.redisDriver.Close(); err != nil && c.logger != nil {
			c.logger.Warn("redis close failed", "error", err)
		}
	}
	c.pgDriver.Close()
}
