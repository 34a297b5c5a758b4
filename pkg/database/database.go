// Package database owns the pgx connection pool used by the activity log.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ghuser/stowage/pkg/logger"
)

const (
	maxConns    = 10
	minConns    = 1
	pingTimeout = 5 * time.Second
)

// Database wraps a pgxpool.Pool.
type Database struct {
	pool *pgxpool.Pool
	log  logger.Logger
}

// New parses url, opens a pool and verifies connectivity.
// Pool limits set in the URL (pool_max_conns, pool_min_conns) take precedence.
func New(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if !strings.Contains(url, "pool_max_conns") {
		cfg.MaxConns = maxConns
	}
	if !strings.Contains(url, "pool_min_conns") {
		cfg.MinConns = minConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("database connected", "max_conns", cfg.MaxConns)
	return &Database{pool: pool, log: log}, nil
}

// Pool returns the underlying pool for repositories.
func (d *Database) Pool() *pgxpool.Pool {
	return d.pool
}

// Ping checks the database connection health.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// Close releases every pooled connection.
func (d *Database) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}
