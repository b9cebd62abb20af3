package repository

import (
	"fmt"

	"github.com/yourusername/diamond-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Game        GameRepository
	TeamProfile TeamProfileRepository
	Prediction  PredictionRepository
	ValueBet    ValueBetRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Game:        NewPostgresGameRepository(db),
		TeamProfile: NewPostgresTeamProfileRepository(db),
		Prediction:  NewPostgresPredictionRepository(db),
		ValueBet:    NewPostgresValueBetRepository(db),
	}, nil
}
