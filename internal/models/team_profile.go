package models

import "time"

// TeamRunProfile aggregates a team's historical run production and
// prevention into the two per-game averages consumed by the run estimator.
type TeamRunProfile struct {
	Team           string    `db:"team" json:"team" validate:"required"`
	AvgRunsScored  float64   `db:"avg_runs_scored" json:"avg_runs_scored" validate:"gte=0"`
	AvgRunsAllowed float64   `db:"avg_runs_allowed" json:"avg_runs_allowed" validate:"gte=0"`
	GamesPlayed    int       `db:"games_played" json:"games_played" validate:"gte=0"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// HasData reports whether the profile is backed by at least one completed
// game. Profiles without data must not be fed to the estimator.
func (p *TeamRunProfile) HasData() bool {
	return p.GamesPlayed > 0
}
