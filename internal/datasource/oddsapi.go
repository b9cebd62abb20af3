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

const oddsSourceName = "the_odds_api"

// OddsAPIClient fetches MLB moneyline prices from The Odds API.
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Logger
}

// oddsEvent mirrors one event in the odds payload.
type oddsEvent struct {
	ID           string          `json:"id"`
	CommenceTime time.Time       `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []oddsBookmaker `json:"bookmakers"`
}

type oddsBookmaker struct {
	Key     string       `json:"key"`
	Markets []oddsMarket `json:"markets"`
}

type oddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []oddsOutcome `json:"outcomes"`
}

type oddsOutcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// NewOddsAPIClient creates a new odds feed client
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *OddsAPIClient {
	return &OddsAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (c *OddsAPIClient) Name() string {
	return oddsSourceName
}

// FetchMoneylines retrieves current American-odds moneylines for upcoming
// MLB games, taking the first bookmaker quoting a head-to-head market.
func (c *OddsAPIClient) FetchMoneylines(ctx context.Context) ([]MoneylineData, error) {
	url := fmt.Sprintf("%s/sports/baseball_mlb/odds?apiKey=%s&regions=us&markets=h2h&oddsFormat=american",
		c.baseURL, c.apiKey)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError(oddsSourceName, ErrCodeNetworkError, "failed to fetch odds", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, NewDataSourceError(oddsSourceName, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case http.StatusTooManyRequests:
		return nil, NewDataSourceError(oddsSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(oddsSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var events []oddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, NewDataSourceError(oddsSourceName, ErrCodeInvalidData, "failed to parse odds", err)
	}

	lines := make([]MoneylineData, 0, len(events))
	for _, event := range events {
		line, ok := extractMoneyline(event)
		if !ok {
			c.logger.WithFields(logrus.Fields{
				"event_id": event.ID,
				"home":     event.HomeTeam,
				"away":     event.AwayTeam,
			}).Debug("No usable moneyline market for event")
			continue
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// extractMoneyline pulls home/away American odds from the first bookmaker
// with a complete h2h market. Zero prices are rejected; American odds are
// never zero and the estimator treats zero as invalid.
func extractMoneyline(event oddsEvent) (MoneylineData, bool) {
	for _, bookmaker := range event.Bookmakers {
		for _, market := range bookmaker.Markets {
			if market.Key != "h2h" {
				continue
			}

			var homeOdds, awayOdds float64
			for _, outcome := range market.Outcomes {
				switch outcome.Name {
				case event.HomeTeam:
					homeOdds = outcome.Price
				case event.AwayTeam:
					awayOdds = outcome.Price
				}
			}

			if homeOdds != 0 && awayOdds != 0 {
				return MoneylineData{
					HomeTeam:     event.HomeTeam,
					AwayTeam:     event.AwayTeam,
					CommenceTime: event.CommenceTime,
					HomeOdds:     homeOdds,
					AwayOdds:     awayOdds,
					Bookmaker:    bookmaker.Key,
				}, true
			}
		}
	}
	return MoneylineData{}, false
}
