package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RecordGeneration logs one model invocation for usage accounting. Failures
// here must not fail the request; callers log and continue.
func (db *DB) RecordGeneration(ctx context.Context, userID uuid.UUID, kind, model string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO generation_events (user_id, kind, model) VALUES ($1, $2, $3)`,
		userID, kind, model,
	)
	if err != nil {
		return fmt.Errorf("failed to record generation event: %w", err)
	}
	return nil
}

// CountGenerations returns the total number of recorded model invocations
func (db *DB) CountGenerations(ctx context.Context) (int, error) {
	var n int
	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM generation_events`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count generation events: %w", err)
	}
	return n, nil
}

// GenerationKindCounts returns invocation totals grouped by generation kind
func (db *DB) GenerationKindCounts(ctx context.Context) (map[string]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT kind, COUNT(*) FROM generation_events GROUP BY kind`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count generation events by kind: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan kind count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
