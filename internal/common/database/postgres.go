package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"skill-match-workers/internal/common/config"

	_ "github.com/lib/pq"
)

const defaultConnMaxLifetime = 5 * time.Minute

// PostgresClient holds the pool the corpus provider reads snapshots from.
type PostgresClient struct {
	DB *sql.DB
}

// OpenPostgres configures the pool and verifies it with a ping, so a
// returned client has reached the server at least once.
func OpenPostgres(ctx context.Context, cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	lifetime := config.GetDuration(cfg.ConnMaxLifetime)
	if lifetime <= 0 {
		lifetime = defaultConnMaxLifetime
	}
	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(lifetime)
	db.SetConnMaxIdleTime(lifetime)

	client := &PostgresClient{DB: db}
	if err := client.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return client, nil
}

// NewPostgresFromDB wraps an existing handle, e.g. a sqlmock connection.
func NewPostgresFromDB(db *sql.DB) *PostgresClient {
	return &PostgresClient{DB: db}
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
