// Package redis_driver keeps engagement counters and the engagement event stream in Redis.
package redis_driver

import (
	"context"
	"errors"
	"feedcard/domain"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDriver stores counters as one string key for generic visits and one hash
// per creative bucket, so INCR and HINCRBY give atomic read-modify-write.
type RedisDriver struct {
	client *redis.Client
	prefix string
}

// NewRedisDriver creates a new Redis driver.
func NewRedisDriver(addr, prefix string) *RedisDriver {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisDriver{client: client, prefix: prefix}
}

// NewRedisDriverWithURL creates a new Redis driver from a URL.
func NewRedisDriverWithURL(url, prefix string) (*RedisDriver, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisDriver{client: redis.NewClient(opts), prefix: prefix}, nil
}

// Close closes the Redis connection.
func (d *RedisDriver) Close() error {
	return d.client.Close()
}

// Ping checks if Redis is available.
func (d *RedisDriver) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

func (d *RedisDriver) bucketKey(bucket domain.CounterBucket) string {
	return fmt.Sprintf("%s:%s", d.prefix, bucket)
}

// Increment atomically adds one to the counter and returns the new value.
func (d *RedisDriver) Increment(ctx context.Context, key domain.CounterKey) (int64, error) {
	switch key.Bucket {
	case domain.BucketGenericVisits:
		return d.client.Incr(ctx, d.bucketKey(key.Bucket)).Result()
	case domain.BucketPromotedVisits, domain.BucketDisplayAdVisits:
		return d.client.HIncrBy(ctx, d.bucketKey(key.Bucket), key.CreativeID, 1).Result()
	default:
		return 0, fmt.Errorf("unknown counter bucket %q", key.Bucket)
	}
}

// Snapshot reads every counter in one pipeline.
func (d *RedisDriver) Snapshot(ctx context.Context) (*domain.EngagementCounters, error) {
	pipe := d.client.Pipeline()
	generic := pipe.Get(ctx, d.bucketKey(domain.BucketGenericVisits))
	promoted := pipe.HGetAll(ctx, d.bucketKey(domain.BucketPromotedVisits))
	displayAd := pipe.HGetAll(ctx, d.bucketKey(domain.BucketDisplayAdVisits))

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	counters := domain.NewEngagementCounters()
	if n, err := generic.Int64(); err == nil {
		counters.GenericVisits = n
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}
	if err := fillHash(counters.PromotedVisitsPerCampaign, promoted.Val()); err != nil {
		return nil, err
	}
	if err := fillHash(counters.DisplayAdVisitsPerCreative, displayAd.Val()); err != nil {
		return nil, err
	}
	return counters, nil
}

func fillHash(dst map[string]int64, src map[string]string) error {
	for field, raw := range src {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("counter %q: %w", field, err)
		}
		dst[field] = n
	}
	return nil
}

// PublishEvent appends an engagement event to a stream and returns the message ID.
func (d *RedisDriver) PublishEvent(ctx context.Context, stream string, event *domain.EngagementEvent) (string, error) {
	if event == nil {
		return "", errors.New("event is nil")
	}
	return d.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: eventToValues(event),
	}).Result()
}

// eventToValues converts an EngagementEvent to a map for XADD.
func eventToValues(event *domain.EngagementEvent) map[string]interface{} {
	values := map[string]interface{}{
		"event_id":      event.EventID,
		"event_type":    string(event.Type),
		"card_position": event.CardPosition,
		"created_at":    event.CreatedAt.Format(time.RFC3339Nano),
	}
	if event.SubjectUUID != "" {
		values["subject_uuid"] = event.SubjectUUID
	}
	if event.CreativeInstanceID != "" {
		values["creative_instance_id"] = event.CreativeInstanceID
	}
	if event.Count > 0 {
		values["count"] = event.Count
	}
	return values
}
