package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/models"
)

// PostgresTeamProfileRepository implements TeamProfileRepository for PostgreSQL
type PostgresTeamProfileRepository struct {
	db *database.DB
}

// NewPostgresTeamProfileRepository creates a new team profile repository
func NewPostgresTeamProfileRepository(db *database.DB) TeamProfileRepository {
	return &PostgresTeamProfileRepository{db: db}
}

// Upsert inserts or replaces a team's run profile
func (r *PostgresTeamProfileRepository) Upsert(ctx context.Context, profile *models.TeamRunProfile) error {
	query := `
		INSERT INTO team_profiles (team, avg_runs_scored, avg_runs_allowed, games_played, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (team) DO UPDATE
		SET avg_runs_scored = EXCLUDED.avg_runs_scored,
		    avg_runs_allowed = EXCLUDED.avg_runs_allowed,
		    games_played = EXCLUDED.games_played,
		    updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		profile.Team, profile.AvgRunsScored, profile.AvgRunsAllowed, profile.GamesPlayed,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert team profile: %w", err)
	}

	return nil
}

// GetByTeam retrieves a single team's run profile
func (r *PostgresTeamProfileRepository) GetByTeam(ctx context.Context, team string) (*models.TeamRunProfile, error) {
	query := `
		SELECT team, avg_runs_scored, avg_runs_allowed, games_played, updated_at
		FROM team_profiles WHERE team = $1
	`

	profile := &models.TeamRunProfile{}
	err := r.db.GetPool().QueryRow(ctx, query, team).Scan(
		&profile.Team, &profile.AvgRunsScored, &profile.AvgRunsAllowed,
		&profile.GamesPlayed, &profile.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team profile: %w", err)
	}

	return profile, nil
}

// GetAll retrieves every stored team profile
func (r *PostgresTeamProfileRepository) GetAll(ctx context.Context) ([]*models.TeamRunProfile, error) {
	query := `
		SELECT team, avg_runs_scored, avg_runs_allowed, games_played, updated_at
		FROM team_profiles ORDER BY team ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query team profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.TeamRunProfile
	for rows.Next() {
		profile := &models.TeamRunProfile{}
		err := rows.Scan(
			&profile.Team, &profile.AvgRunsScored, &profile.AvgRunsAllowed,
			&profile.GamesPlayed, &profile.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}
