package database

import (
	"context"
	"fmt"
)

// Schema statements for the analytics store. Idempotent so services can run
// them at startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id UUID PRIMARY KEY,
		source_id TEXT NOT NULL UNIQUE,
		game_date DATE NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		home_runs INT,
		away_runs INT,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_games_game_date ON games (game_date)`,
	`CREATE INDEX IF NOT EXISTS idx_games_status ON games (status)`,
	`CREATE TABLE IF NOT EXISTS team_profiles (
		team TEXT PRIMARY KEY,
		avg_runs_scored DOUBLE PRECISION NOT NULL,
		avg_runs_allowed DOUBLE PRECISION NOT NULL,
		games_played INT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id UUID PRIMARY KEY,
		game_id UUID NOT NULL REFERENCES games (id),
		model_name TEXT NOT NULL,
		home_win_prob DOUBLE PRECISION NOT NULL,
		away_win_prob DOUBLE PRECISION NOT NULL,
		tie_prob DOUBLE PRECISION NOT NULL,
		home_expected_runs DOUBLE PRECISION NOT NULL,
		away_expected_runs DOUBLE PRECISION NOT NULL,
		predicted_winner TEXT NOT NULL,
		correct BOOLEAN,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		settled_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_game_id ON predictions (game_id)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_model_name ON predictions (model_name)`,
	`CREATE TABLE IF NOT EXISTS value_bets (
		id UUID PRIMARY KEY,
		game_id UUID NOT NULL REFERENCES games (id),
		team TEXT NOT NULL,
		side TEXT NOT NULL,
		american_odds DOUBLE PRECISION NOT NULL,
		win_probability DOUBLE PRECISION NOT NULL,
		stake NUMERIC(12,2) NOT NULL,
		expected_value NUMERIC(12,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_value_bets_game_id ON value_bets (game_id)`,
}

// EnsureSchema creates the tables and indexes the service needs.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
