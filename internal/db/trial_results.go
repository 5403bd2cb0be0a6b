package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/negotiation-harness/internal/results"
)

// SaveTrialResult stores one normalized trial record for a run. Nullable
// metrics map to SQL NULLs, keeping "not extracted" distinguishable from
// zero in the database as well as in the table.
func (db *DB) SaveTrialResult(ctx context.Context, runID uuid.UUID, record results.Record) error {
	configJSON, err := json.Marshal(record.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal trial config: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO trial_results
		   (run_id, trial_id, variant, repetition, config, success, error, response, willingness_to_pay, offer)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (run_id, trial_id) DO UPDATE SET
		   success = $6, error = $7, response = $8, willingness_to_pay = $9, offer = $10`,
		runID, record.TrialID, record.Variant, record.Repetition, configJSON,
		record.Success, record.Error, record.Response, record.WillingnessToPay, record.Offer,
	)
	if err != nil {
		return fmt.Errorf("failed to save trial result %s: %w", record.TrialID, err)
	}
	return nil
}

// CountTrialResults returns the number of stored records for a run.
func (db *DB) CountTrialResults(ctx context.Context, runID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM trial_results WHERE run_id = $1`,
		runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trial results: %w", err)
	}
	return count, nil
}
