package datasource

import (
	"context"
	"time"
)

// GameSource defines the interface for fetching game schedules and results
// from an external stats provider.
type GameSource interface {
	// FetchGames retrieves the games scheduled or played on a single date.
	FetchGames(ctx context.Context, date time.Time) ([]GameData, error)

	// Name returns the name of the data source
	Name() string
}

// OddsSource defines the interface for fetching moneyline prices.
type OddsSource interface {
	// FetchMoneylines retrieves current moneyline odds for upcoming games.
	FetchMoneylines(ctx context.Context) ([]MoneylineData, error)

	// Name returns the name of the data source
	Name() string
}

// GameData represents a normalized game record from any stats provider.
type GameData struct {
	SourceID string    `json:"source_id"` // Provider's unique game ID
	GameDate time.Time `json:"game_date"` // Calendar date of the game (UTC)
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	HomeRuns *int      `json:"home_runs"` // Final score, nil until completed
	AwayRuns *int      `json:"away_runs"`
	Status   string    `json:"status"` // scheduled, inprogress, completed
}

// MoneylineData represents normalized American-odds prices for one game.
type MoneylineData struct {
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	CommenceTime time.Time `json:"commence_time"`
	HomeOdds     float64   `json:"home_odds"` // American odds, nonzero
	AwayOdds     float64   `json:"away_odds"`
	Bookmaker    string    `json:"bookmaker"`
}
