package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condomaster/api/internal/config"
)

// Database wraps the pgx connection pool and provides database operations.
type Database struct {
	Pool *pgxpool.Pool
}

// NewPostgresPool creates a PostgreSQL connection pool using pgx, configures
// it from the database settings, verifies the connection and returns a
// Database instance.
func NewPostgresPool(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MinConns = int32(cfg.PoolMin)
	poolConfig.MaxConns = int32(cfg.PoolMax)

	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Second
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{Pool: pool}, nil
}

// Ping checks if the database connection is alive.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close gracefully closes the database connection pool.
// It waits for all connections to be returned to the pool before closing.
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Stats returns statistics about the connection pool.
func (db *Database) Stats() *pgxpool.Stat {
	if db.Pool == nil {
		return nil
	}
	return db.Pool.Stat()
}
