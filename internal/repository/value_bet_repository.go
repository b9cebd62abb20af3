package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/models"
)

const valueBetColumns = `id, game_id, team, side, american_odds, win_probability, stake, expected_value, created_at`

// PostgresValueBetRepository implements ValueBetRepository for PostgreSQL
type PostgresValueBetRepository struct {
	db *database.DB
}

// NewPostgresValueBetRepository creates a new value bet repository
func NewPostgresValueBetRepository(db *database.DB) ValueBetRepository {
	return &PostgresValueBetRepository{db: db}
}

// Create inserts a new value bet recommendation
func (r *PostgresValueBetRepository) Create(ctx context.Context, bet *models.ValueBet) error {
	query := `
		INSERT INTO value_bets (id, game_id, team, side, american_odds, win_probability, stake, expected_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		bet.ID, bet.GameID, bet.Team, bet.Side, bet.AmericanOdds,
		bet.WinProbability, bet.Stake, bet.ExpectedValue,
	)
	if err != nil {
		return fmt.Errorf("failed to create value bet: %w", err)
	}

	return nil
}

// GetByGameID retrieves recommendations for a single game
func (r *PostgresValueBetRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.ValueBet, error) {
	query := `SELECT ` + valueBetColumns + ` FROM value_bets WHERE game_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.GetPool().Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query value bets by game: %w", err)
	}
	defer rows.Close()

	return scanValueBets(rows)
}

// GetRecent retrieves the most recent recommendations
func (r *PostgresValueBetRepository) GetRecent(ctx context.Context, limit int) ([]*models.ValueBet, error) {
	query := `SELECT ` + valueBetColumns + ` FROM value_bets ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent value bets: %w", err)
	}
	defer rows.Close()

	return scanValueBets(rows)
}

func scanValueBets(rows pgx.Rows) ([]*models.ValueBet, error) {
	var bets []*models.ValueBet
	for rows.Next() {
		bet := &models.ValueBet{}
		err := rows.Scan(
			&bet.ID, &bet.GameID, &bet.Team, &bet.Side, &bet.AmericanOdds,
			&bet.WinProbability, &bet.Stake, &bet.ExpectedValue, &bet.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan value bet: %w", err)
		}
		bets = append(bets, bet)
	}
	return bets, rows.Err()
}
