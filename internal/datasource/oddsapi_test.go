package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOddsAPIClient_FetchMoneylines(t *testing.T) {
	const payload = `[
		{
			"id": "evt-1",
			"commence_time": "2024-07-04T23:05:00Z",
			"home_team": "New York Yankees",
			"away_team": "Boston Red Sox",
			"bookmakers": [
				{
					"key": "draftkings",
					"markets": [
						{
							"key": "h2h",
							"outcomes": [
								{"name": "New York Yankees", "price": -150},
								{"name": "Boston Red Sox", "price": 130}
							]
						}
					]
				}
			]
		},
		{
			"id": "evt-2",
			"commence_time": "2024-07-04T23:05:00Z",
			"home_team": "Chicago Cubs",
			"away_team": "St. Louis Cardinals",
			"bookmakers": []
		}
	]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/baseball_mlb/odds", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "h2h", r.URL.Query().Get("markets"))
		assert.Equal(t, "american", r.URL.Query().Get("oddsFormat"))
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewOddsAPIClient(testHTTPClient(), server.URL, "test-key", testLogger())

	lines, err := client.FetchMoneylines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.Equal(t, "New York Yankees", line.HomeTeam)
	assert.Equal(t, "Boston Red Sox", line.AwayTeam)
	assert.Equal(t, -150.0, line.HomeOdds)
	assert.Equal(t, 130.0, line.AwayOdds)
	assert.Equal(t, "draftkings", line.Bookmaker)
	assert.Equal(t, time.Date(2024, 7, 4, 23, 5, 0, 0, time.UTC), line.CommenceTime)
}

func TestOddsAPIClient_FetchMoneylines_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewOddsAPIClient(testHTTPClient(), server.URL, "bad-key", testLogger())

	_, err := client.FetchMoneylines(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, oddsSourceName, dsErr.Source)
}

func TestExtractMoneyline(t *testing.T) {
	event := oddsEvent{
		HomeTeam: "Home",
		AwayTeam: "Away",
		Bookmakers: []oddsBookmaker{
			{
				Key: "no-h2h",
				Markets: []oddsMarket{
					{Key: "totals"},
				},
			},
			{
				Key: "partial",
				Markets: []oddsMarket{
					{
						Key: "h2h",
						Outcomes: []oddsOutcome{
							{Name: "Home", Price: -110},
						},
					},
				},
			},
			{
				Key: "complete",
				Markets: []oddsMarket{
					{
						Key: "h2h",
						Outcomes: []oddsOutcome{
							{Name: "Home", Price: -110},
							{Name: "Away", Price: -105},
						},
					},
				},
			},
		},
	}

	line, ok := extractMoneyline(event)
	require.True(t, ok)
	assert.Equal(t, "complete", line.Bookmaker)
	assert.Equal(t, -110.0, line.HomeOdds)
	assert.Equal(t, -105.0, line.AwayOdds)

	_, ok = extractMoneyline(oddsEvent{HomeTeam: "Home", AwayTeam: "Away"})
	assert.False(t, ok)
}
