// Package pg_driver persists engagement counters in PostgreSQL.
package pg_driver

import (
	"context"
	"errors"
	"feedcard/domain"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS engagement_counters (
	bucket      TEXT        NOT NULL,
	creative_id TEXT        NOT NULL DEFAULT '',
	count       BIGINT      NOT NULL DEFAULT 0,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (bucket, creative_id)
)`

const incrementSQL = `INSERT INTO engagement_counters (bucket, creative_id, count)
VALUES ($1, $2, 1)
ON CONFLICT (bucket, creative_id)
DO UPDATE SET count = engagement_counters.count + 1, updated_at = now()
RETURNING count`

const snapshotSQL = `SELECT bucket, creative_id, count FROM engagement_counters`

// PgDriver keeps one row per counter; the upsert serializes concurrent increments on the row lock.
type PgDriver struct {
	db DatabaseIface
}

func NewPgDriver(db DatabaseIface) *PgDriver {
	return &PgDriver{db: db}
}

// Connect opens a pgx pool and verifies it with a ping.
func Connect(ctx context.Context, url string, maxConns int, timeout time.Duration) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(maxConns)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the counters table when missing.
func (d *PgDriver) EnsureSchema(ctx context.Context) error {
	if d == nil || d.db == nil {
		return errors.New("database connection not available")
	}
	_, err := d.db.Exec(ctx, schemaSQL)
	return err
}

func (d *PgDriver) Increment(ctx context.Context, key domain.CounterKey) (int64, error) {
	if d == nil || d.db == nil {
		return 0, errors.New("database connection not available")
	}
	var count int64
	if err := d.db.QueryRow(ctx, incrementSQL, string(key.Bucket), key.CreativeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("increment %s/%s: %w", key.Bucket, key.CreativeID, err)
	}
	return count, nil
}

func (d *PgDriver) Snapshot(ctx context.Context) (*domain.EngagementCounters, error) {
	if d == nil || d.db == nil {
		return nil, errors.New("database connection not available")
	}
	rows, err := d.db.Query(ctx, snapshotSQL)
	if err != nil {
		return nil, fmt.Errorf("snapshot query: %w", err)
	}
	defer rows.Close()

	counters := domain.NewEngagementCounters()
	for rows.Next() {
		var (
			bucket, creativeID string
			count              int64
		)
		if err := rows.Scan(&bucket, &creativeID, &count); err != nil {
			return nil, fmt.Errorf("snapshot scan: %w", err)
		}
		counters.Set(domain.CounterKey{Bucket: domain.CounterBucket(bucket), CreativeID: creativeID}, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot rows: %w", err)
	}
	return counters, nil
}

func (d *PgDriver) Close() {
	if d != nil && d.db != nil {
		d.db.Close()
	}
}
