package counter_store_gateway

import (
	"context"
	"feedcard/domain"
	"feedcard/utils/errors"
)

// CounterDriver is satisfied by the memory, Redis and Postgres drivers.
type CounterDriver interface {
	Increment(ctx context.Context, key domain.CounterKey) (int64, error)
	Snapshot(ctx context.Context) (*domain.EngagementCounters, error)
}

// CounterStoreGateway implements CounterStorePort over a storage driver.
type CounterStoreGateway struct {
	driver  CounterDriver
	backend string
}

func NewCounterStoreGateway(driver CounterDriver, backend string) *CounterStoreGateway {
	return &CounterStoreGateway{driver: driver, backend: backend}
}

func (g *CounterStoreGateway) Increment(ctx context.Context, key domain.CounterKey) (int64, error) {
	if key.Bucket != domain.BucketGenericVisits && key.CreativeID == "" {
		return 0, errors.NewValidationContextError(
			"creative id required for sponsored counters",
			"gateway",
			"CounterStoreGateway",
			"increment",
			map[string]interface{}{
				"bucket": string(key.Bucket),
			},
		)
	}
	value, err := g.driver.Increment(ctx, key)
	if err != nil {
		return 0, errors.NewDatabaseContextError(
			"failed to increment counter",
			"gateway",
			"CounterStoreGateway",
			"increment",
			err,
			map[string]interface{}{
				"backend":     g.backend,
				"bucket":      string(key.Bucket),
				"creative_id": key.CreativeID,
			},
		)
	}
	return value, nil
}

func (g *CounterStoreGateway) Snapshot(ctx context.Context) (*domain.EngagementCounters, error) {
	counters, err := g.driver.Snapshot(ctx)
	if err != nil {
		return nil, errors.NewDatabaseContextError(
			"failed to read counters",
			"gateway",
			"CounterStoreGateway",
			"snapshot",
			err,
			map[string]interface{}{
				"backend": g.backend,
			},
		)
	}
	return counters, nil
}
