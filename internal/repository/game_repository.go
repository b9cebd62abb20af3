package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/models"
)

const errScanGame = "failed to scan game: %w"

const gameColumns = `id, source_id, game_date, home_team, away_team, home_runs, away_runs, status, created_at, updated_at`

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Upsert inserts a game or refreshes its score and status on conflict. The
// stats feed re-reports games, so the source id is the natural key.
func (r *PostgresGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, source_id, game_date, home_team, away_team, home_runs, away_runs, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (source_id) DO UPDATE
		SET home_runs = EXCLUDED.home_runs,
		    away_runs = EXCLUDED.away_runs,
		    status = EXCLUDED.status,
		    updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		game.ID, game.SourceID, game.GameDate, game.HomeTeam, game.AwayTeam,
		game.HomeRuns, game.AwayRuns, game.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game := &models.Game{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&game.ID, &game.SourceID, &game.GameDate, &game.HomeTeam, &game.AwayTeam,
		&game.HomeRuns, &game.AwayRuns, &game.Status, &game.CreatedAt, &game.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetBySourceID retrieves a game by its stats feed identifier
func (r *PostgresGameRepository) GetBySourceID(ctx context.Context, sourceID string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE source_id = $1`

	game := &models.Game{}
	err := r.db.GetPool().QueryRow(ctx, query, sourceID).Scan(
		&game.ID, &game.SourceID, &game.GameDate, &game.HomeTeam, &game.AwayTeam,
		&game.HomeRuns, &game.AwayRuns, &game.Status, &game.CreatedAt, &game.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by source id: %w", err)
	}

	return game, nil
}

// GetCompletedSince retrieves completed games on or after the given date
func (r *PostgresGameRepository) GetCompletedSince(ctx context.Context, since time.Time) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE status = 'completed' AND game_date >= $1
		ORDER BY game_date ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// GetScheduledOn retrieves games scheduled for the given date
func (r *PostgresGameRepository) GetScheduledOn(ctx context.Context, date time.Time) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE status = 'scheduled' AND game_date = $1
		ORDER BY home_team ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

func scanGames(rows pgx.Rows) ([]*models.Game, error) {
	var games []*models.Game
	for rows.Next() {
		game := &models.Game{}
		err := rows.Scan(
			&game.ID, &game.SourceID, &game.GameDate, &game.HomeTeam, &game.AwayTeam,
			&game.HomeRuns, &game.AwayRuns, &game.Status, &game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}
