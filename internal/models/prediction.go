package models

import (
	"time"

	"github.com/google/uuid"
)

// Prediction records the outcome model produced for a game before first
// pitch, and the settlement result once the final score is known.
type Prediction struct {
	ID               uuid.UUID  `db:"id" json:"id" validate:"required"`
	GameID           uuid.UUID  `db:"game_id" json:"game_id" validate:"required"`
	ModelName        string     `db:"model_name" json:"model_name" validate:"required"`
	HomeWinProb      float64    `db:"home_win_prob" json:"home_win_prob" validate:"gte=0,lte=1"`
	AwayWinProb      float64    `db:"away_win_prob" json:"away_win_prob" validate:"gte=0,lte=1"`
	TieProb          float64    `db:"tie_prob" json:"tie_prob" validate:"gte=0,lte=1"`
	HomeExpectedRuns float64    `db:"home_expected_runs" json:"home_expected_runs" validate:"gte=0"`
	AwayExpectedRuns float64    `db:"away_expected_runs" json:"away_expected_runs" validate:"gte=0"`
	PredictedWinner  string     `db:"predicted_winner" json:"predicted_winner"`
	Correct          *bool      `db:"correct" json:"correct"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	SettledAt        *time.Time `db:"settled_at" json:"settled_at"`
}

// IsSettled reports whether the prediction has been scored against a final
// result.
func (p *Prediction) IsSettled() bool {
	return p.SettledAt != nil
}

// FavoredSide returns the side the model favors.
func (p *Prediction) FavoredSide() string {
	if p.HomeWinProb >= p.AwayWinProb {
		return BetSideHome
	}
	return BetSideAway
}
