package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bet sides for a moneyline wager.
const (
	BetSideHome = "home"
	BetSideAway = "away"
)

// ValueBet is a moneyline recommendation: the model's win probability for a
// side, the offered American odds, and the expected net payoff of staking
// the given amount. Monetary fields use decimals to keep ledger arithmetic
// exact.
type ValueBet struct {
	ID             uuid.UUID       `db:"id" json:"id" validate:"required"`
	GameID         uuid.UUID       `db:"game_id" json:"game_id" validate:"required"`
	Team           string          `db:"team" json:"team" validate:"required"`
	Side           string          `db:"side" json:"side" validate:"required,oneof=home away"`
	AmericanOdds   float64         `db:"american_odds" json:"american_odds" validate:"required"`
	WinProbability float64         `db:"win_probability" json:"win_probability" validate:"gte=0,lte=1"`
	Stake          decimal.Decimal `db:"stake" json:"stake"`
	ExpectedValue  decimal.Decimal `db:"expected_value" json:"expected_value"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Edge returns the expected value per unit staked, or zero for a zero stake.
func (v *ValueBet) Edge() decimal.Decimal {
	if v.Stake.IsZero() {
		return decimal.Zero
	}
	return v.ExpectedValue.Div(v.Stake)
}
