package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const statsSourceName = "sportradar"

// StatsAPIClient fetches MLB schedules and final scores from the SportRadar
// daily schedule feed.
type StatsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Logger
}

// scheduleResponse mirrors the daily schedule payload.
type scheduleResponse struct {
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	ID      string       `json:"id"`
	Status  string       `json:"status"`
	Home    scheduleTeam `json:"home"`
	Away    scheduleTeam `json:"away"`
	Scoring *gameScoring `json:"scoring"`
}

type scheduleTeam struct {
	Name string `json:"name"`
}

type gameScoring struct {
	HomeRuns int `json:"home_runs"`
	AwayRuns int `json:"away_runs"`
}

// NewStatsAPIClient creates a new stats feed client
func NewStatsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *StatsAPIClient {
	return &StatsAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (c *StatsAPIClient) Name() string {
	return statsSourceName
}

// FetchGames retrieves the games scheduled or played on a single date.
func (c *StatsAPIClient) FetchGames(ctx context.Context, date time.Time) ([]GameData, error) {
	url := fmt.Sprintf("%s/games/%s/schedule.json?api_key=%s",
		c.baseURL, date.UTC().Format("2006/01/02"), c.apiKey)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError(statsSourceName, ErrCodeNetworkError, "failed to fetch schedule", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, NewDataSourceError(statsSourceName, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case http.StatusTooManyRequests:
		return nil, NewDataSourceError(statsSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(statsSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var schedule scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
		return nil, NewDataSourceError(statsSourceName, ErrCodeInvalidData, "failed to parse schedule", err)
	}

	games := make([]GameData, 0, len(schedule.Games))
	for _, g := range schedule.Games {
		if g.Home.Name == "" || g.Away.Name == "" {
			c.logger.WithField("game_id", g.ID).Warn("Skipping schedule entry with missing team names")
			continue
		}

		game := GameData{
			SourceID: g.ID,
			GameDate: date.UTC().Truncate(24 * time.Hour),
			HomeTeam: g.Home.Name,
			AwayTeam: g.Away.Name,
			Status:   normalizeStatus(g.Status),
		}

		if game.Status == "completed" && g.Scoring != nil {
			home, away := g.Scoring.HomeRuns, g.Scoring.AwayRuns
			game.HomeRuns = &home
			game.AwayRuns = &away
		}

		games = append(games, game)
	}

	return games, nil
}

// normalizeStatus maps feed statuses onto the three states the store tracks.
func normalizeStatus(status string) string {
	switch status {
	case "scheduled", "created":
		return "scheduled"
	case "complete", "completed", "closed":
		return "completed"
	default:
		return "inprogress"
	}
}
