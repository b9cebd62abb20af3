package models

import (
	"time"

	"github.com/google/uuid"
)

// Game statuses as reported by the stats feed.
const (
	GameStatusScheduled  = "scheduled"
	GameStatusInProgress = "inprogress"
	GameStatusCompleted  = "completed"
)

// Game represents a single MLB game and, once completed, its final score.
type Game struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required"`
	SourceID  string    `db:"source_id" json:"source_id" validate:"required"`
	GameDate  time.Time `db:"game_date" json:"game_date" validate:"required"`
	HomeTeam  string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam  string    `db:"away_team" json:"away_team" validate:"required"`
	HomeRuns  *int      `db:"home_runs" json:"home_runs"`
	AwayRuns  *int      `db:"away_runs" json:"away_runs"`
	Status    string    `db:"status" json:"status" validate:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsCompleted reports whether the game has a final score.
func (g *Game) IsCompleted() bool {
	return g.Status == GameStatusCompleted && g.HomeRuns != nil && g.AwayRuns != nil
}

// WinnerName returns the winning team's name, "Tie" for a tied final score,
// or an empty string when the game has no final score yet.
func (g *Game) WinnerName() string {
	if !g.IsCompleted() {
		return ""
	}
	switch {
	case *g.HomeRuns > *g.AwayRuns:
		return g.HomeTeam
	case *g.AwayRuns > *g.HomeRuns:
		return g.AwayTeam
	default:
		return "Tie"
	}
}
