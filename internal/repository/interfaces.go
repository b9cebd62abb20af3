package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/diamond-edge/internal/models"
)

// GameRepository defines the interface for game data access
type GameRepository interface {
	Upsert(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	GetBySourceID(ctx context.Context, sourceID string) (*models.Game, error)
	GetCompletedSince(ctx context.Context, since time.Time) ([]*models.Game, error)
	GetScheduledOn(ctx context.Context, date time.Time) ([]*models.Game, error)
}

// TeamProfileRepository defines the interface for team run profile access
type TeamProfileRepository interface {
	Upsert(ctx context.Context, profile *models.TeamRunProfile) error
	GetByTeam(ctx context.Context, team string) (*models.TeamRunProfile, error)
	GetAll(ctx context.Context) ([]*models.TeamRunProfile, error)
}

// PredictionRepository defines the interface for prediction data access
type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) error
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Prediction, error)
	GetUnsettled(ctx context.Context, modelName string) ([]*models.Prediction, error)
	Settle(ctx context.Context, id uuid.UUID, correct bool, settledAt time.Time) error
	GetAccuracy(ctx context.Context, modelName string, since time.Time) (float64, error)
}

// ValueBetRepository defines the interface for value bet recommendations
type ValueBetRepository interface {
	Create(ctx context.Context, bet *models.ValueBet) error
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.ValueBet, error)
	GetRecent(ctx context.Context, limit int) ([]*models.ValueBet, error)
}
