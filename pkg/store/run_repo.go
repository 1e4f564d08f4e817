// Package store persists lbo.ResultBundle runs to Postgres as JSONB
// blobs, keyed by run ID.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lboengine/pkg/lbo"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// runsTableDDL creates the lbo_runs table this repository reads and
// writes; run once against every freshly opened pool so a bare
// DATABASE_URL against an empty database is enough to start saving runs.
const runsTableDDL = `
CREATE TABLE IF NOT EXISTS lbo_runs (
	run_id TEXT PRIMARY KEY,
	scenario_name TEXT,
	result_json JSONB,
	created_at TIMESTAMPTZ
);
`

// InitDB opens the shared connection pool from DATABASE_URL and ensures
// lbo_runs exists. Safe to call more than once; only the first call takes
// effect. Grounded on pkg/core/store/db.go's sync.Once pgxpool init,
// folded in here (rather than kept as a standalone db.go) since the pool
// exists only to back RunRepo.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		cfg, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		var p *pgxpool.Pool
		p, err = pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return
		}
		if _, execErr := p.Exec(ctx, runsTableDDL); execErr != nil {
			err = fmt.Errorf("failed to ensure lbo_runs table: %w", execErr)
			return
		}
		pool = p
	})
	return err
}

// GetPool returns the shared connection pool, or nil if InitDB was never
// called successfully.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close shuts down the connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}

// RunRepo persists and retrieves lbo.ResultBundle runs. Grounded on
// pkg/core/store/analysis_repo.go's upsert-into-JSONB shape, adapted from
// ticker-keyed equity analysis to run-ID-keyed LBO projections.
type RunRepo struct{}

// NewRunRepo creates a new repository instance.
func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

// Save upserts one run's full result bundle under its RunID.
func (r *RunRepo) Save(ctx context.Context, scenarioName string, bundle *lbo.ResultBundle) error {
	p := GetPool()
	if p == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to marshal result bundle: %w", err)
	}

	query := `
		INSERT INTO lbo_runs (run_id, scenario_name, result_json, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id)
		DO UPDATE SET
			scenario_name = EXCLUDED.scenario_name,
			result_json = EXCLUDED.result_json,
			created_at = EXCLUDED.created_at;
	`
	_, err = p.Exec(ctx, query, bundle.RunID, scenarioName, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", bundle.RunID, err)
	}
	return nil
}

// Load retrieves a previously saved run by its RunID.
func (r *RunRepo) Load(ctx context.Context, runID string) (*lbo.ResultBundle, error) {
	p := GetPool()
	if p == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT result_json FROM lbo_runs WHERE run_id = $1`

	var jsonData []byte
	err := p.QueryRow(ctx, query, runID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no run found for run_id %s", runID)
		}
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	var bundle lbo.ResultBundle
	if err := json.Unmarshal(jsonData, &bundle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", runID, err)
	}
	return &bundle, nil
}
