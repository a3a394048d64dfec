package counter_store_port

//go:generate go run go.uber.org/mock/mockgen -source=counter_store_port.go -destination=../../mocks/mock_counter_store_port.go -package=mocks

import (
	"context"
	"feedcard/domain"
)

// CounterStorePort persists engagement counters. Increment must be atomic per key.
type CounterStorePort interface {
	// Increment adds one to the counter and returns the new value
	Increment(ctx context.Context, key domain.CounterKey) (int64, error)
	Snapshot(ctx context.Context) (*domain.EngagementCounters, error)
}
