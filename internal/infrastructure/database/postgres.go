package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
)

// PostgresDB wraps the pgx connection pool and its lifecycle.
type PostgresDB struct {
	Pool   *pgxpool.Pool
	config config.DatabaseConfig

	maxRetries     int
	retryDelay     time.Duration
	connectTimeout time.Duration
}

func NewPostgresDB(cfg config.DatabaseConfig) *PostgresDB {
	return &PostgresDB{
		config:         cfg,
		maxRetries:     5,
		retryDelay:     time.Second,
		connectTimeout: 10 * time.Second,
	}
}

func (db *PostgresDB) poolConfig() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(db.config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	cfg.MaxConns = int32(db.config.MaxConns)
	cfg.MinConns = int32(db.config.MinConns)
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute
	cfg.ConnConfig.ConnectTimeout = db.connectTimeout

	return cfg, nil
}

// Connect establishes the pool, retrying with exponential backoff so a
// briefly unavailable database does not kill the process at startup.
func (db *PostgresDB) Connect(ctx context.Context) error {
	cfg, err := db.poolConfig()
	if err != nil {
		return err
	}

	var pool *pgxpool.Pool
	var lastErr error

	for attempt := 1; attempt <= db.maxRetries; attempt++ {
		connectCtx, cancel := context.WithTimeout(ctx, db.connectTimeout)
		pool, lastErr = pgxpool.NewWithConfig(connectCtx, cfg)
		cancel()

		if lastErr == nil {
			if err := pool.Ping(ctx); err != nil {
				pool.Close()
				lastErr = err
			} else {
				db.Pool = pool
				log.Info().Int("attempt", attempt).Msg("database connected")
				return nil
			}
		}

		log.Warn().Err(lastErr).Int("attempt", attempt).Msg("database connection failed")

		if attempt < db.maxRetries {
			delay := db.retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", db.maxRetries, lastErr)
}

// HealthCheck verifies the pool is alive; called by the health endpoint.
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
