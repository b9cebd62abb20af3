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

const errScanPrediction = "failed to scan prediction: %w"

const predictionColumns = `id, game_id, model_name, home_win_prob, away_win_prob, tie_prob,
	       home_expected_runs, away_expected_runs, predicted_winner, correct, created_at, settled_at`

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Create inserts a new prediction
func (r *PostgresPredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (id, game_id, model_name, home_win_prob, away_win_prob, tie_prob,
		                         home_expected_runs, away_expected_runs, predicted_winner)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		prediction.ID, prediction.GameID, prediction.ModelName,
		prediction.HomeWinProb, prediction.AwayWinProb, prediction.TieProb,
		prediction.HomeExpectedRuns, prediction.AwayExpectedRuns, prediction.PredictedWinner,
	)
	if err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}

	return nil
}

// GetByGameID retrieves every prediction stored for a game
func (r *PostgresPredictionRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE game_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.GetPool().Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions by game: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

// GetUnsettled retrieves predictions that have not yet been scored against a result
func (r *PostgresPredictionRepository) GetUnsettled(ctx context.Context, modelName string) ([]*models.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE model_name = $1 AND settled_at IS NULL
		ORDER BY created_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsettled predictions: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

// Settle records whether a prediction called the game correctly
func (r *PostgresPredictionRepository) Settle(ctx context.Context, id uuid.UUID, correct bool, settledAt time.Time) error {
	query := `UPDATE predictions SET correct = $2, settled_at = $3 WHERE id = $1`

	tag, err := r.db.GetPool().Exec(ctx, query, id, correct, settledAt)
	if err != nil {
		return fmt.Errorf("failed to settle prediction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// GetAccuracy returns the fraction of settled predictions since the given
// time that called the winner correctly. Returns 0 when nothing has settled.
func (r *PostgresPredictionRepository) GetAccuracy(ctx context.Context, modelName string, since time.Time) (float64, error) {
	query := `
		SELECT COALESCE(AVG(CASE WHEN correct THEN 1.0 ELSE 0.0 END), 0)
		FROM predictions
		WHERE model_name = $1 AND settled_at IS NOT NULL AND created_at >= $2
	`

	var accuracy float64
	if err := r.db.GetPool().QueryRow(ctx, query, modelName, since).Scan(&accuracy); err != nil {
		return 0, fmt.Errorf("failed to compute prediction accuracy: %w", err)
	}

	return accuracy, nil
}

func scanPredictions(rows pgx.Rows) ([]*models.Prediction, error) {
	var predictions []*models.Prediction
	for rows.Next() {
		prediction := &models.Prediction{}
		err := rows.Scan(
			&prediction.ID, &prediction.GameID, &prediction.ModelName,
			&prediction.HomeWinProb, &prediction.AwayWinProb, &prediction.TieProb,
			&prediction.HomeExpectedRuns, &prediction.AwayExpectedRuns,
			&prediction.PredictedWinner, &prediction.Correct,
			&prediction.CreatedAt, &prediction.SettledAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanPrediction, err)
		}
		predictions = append(predictions, prediction)
	}
	return predictions, rows.Err()
}
