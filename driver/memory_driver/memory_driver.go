// Package memory_driver keeps engagement counters in process memory.
package memory_driver

import (
	"context"
	"feedcard/domain"
	"sync"
)

// MemoryDriver is the default counter store for a single process session.
type MemoryDriver struct {
	mu       sync.Mutex
	counters map[domain.CounterKey]int64
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{counters: make(map[domain.CounterKey]int64)}
}

func (d *MemoryDriver) Increment(ctx context.Context, key domain.CounterKey) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counters[key]++
	return d.counters[key], nil
}

func (d *MemoryDriver) Snapshot(ctx context.Context) (*domain.EngagementCounters, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	out := domain.NewEngagementCounters()
	for key, value := range d.counters {
		out.Set(key, value)
	}
	return out, nil
}
