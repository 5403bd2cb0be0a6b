// Package db provides PostgreSQL access for optional experiment-run
// persistence. Runs still produce their CSV output when no database is
// configured; persistence failures warn and never abort an experiment.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateRun creates a new experiment-run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, model, mode string, totalTrials int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO experiment_runs (model, mode, total_trials, status)
		 VALUES ($1, $2, $3, 'running')
		 RETURNING id`,
		model, mode, totalTrials,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks an experiment run as completed
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE experiment_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}
