package datasource

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHTTPClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.RateLimit = 1000
	cfg.MaxRetries = 0
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = time.Millisecond
	return NewRateLimitedHTTPClient(cfg, testLogger())
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestStatsAPIClient_FetchGames(t *testing.T) {
	const payload = `{
		"games": [
			{
				"id": "abc-123",
				"status": "closed",
				"home": {"name": "New York Yankees"},
				"away": {"name": "Boston Red Sox"},
				"scoring": {"home_runs": 5, "away_runs": 3}
			},
			{
				"id": "def-456",
				"status": "scheduled",
				"home": {"name": "Los Angeles Dodgers"},
				"away": {"name": "San Francisco Giants"}
			}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/2024/07/04/schedule.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewStatsAPIClient(testHTTPClient(), server.URL, "test-key", testLogger())
	date := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)

	games, err := client.FetchGames(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, games, 2)

	completed := games[0]
	assert.Equal(t, "abc-123", completed.SourceID)
	assert.Equal(t, "New York Yankees", completed.HomeTeam)
	assert.Equal(t, "Boston Red Sox", completed.AwayTeam)
	assert.Equal(t, "completed", completed.Status)
	require.NotNil(t, completed.HomeRuns)
	require.NotNil(t, completed.AwayRuns)
	assert.Equal(t, 5, *completed.HomeRuns)
	assert.Equal(t, 3, *completed.AwayRuns)

	scheduled := games[1]
	assert.Equal(t, "scheduled", scheduled.Status)
	assert.Nil(t, scheduled.HomeRuns)
	assert.Nil(t, scheduled.AwayRuns)
}

func TestStatsAPIClient_FetchGames_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewStatsAPIClient(testHTTPClient(), server.URL, "bad-key", testLogger())

	_, err := client.FetchGames(context.Background(), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, statsSourceName, dsErr.Source)
	assert.Equal(t, ErrCodeAuthenticationFailed, dsErr.Code)
}

func TestStatsAPIClient_FetchGames_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"games": [`))
	}))
	defer server.Close()

	client := NewStatsAPIClient(testHTTPClient(), server.URL, "test-key", testLogger())

	_, err := client.FetchGames(context.Background(), time.Now())
	require.Error(t, err)

	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeInvalidData, dsErr.Code)
}

func TestStatsAPIClient_FetchGames_SkipsNamelessEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"games": [{"id": "x", "status": "scheduled", "home": {}, "away": {"name": "B"}}]}`))
	}))
	defer server.Close()

	client := NewStatsAPIClient(testHTTPClient(), server.URL, "test-key", testLogger())

	games, err := client.FetchGames(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, "scheduled", normalizeStatus("scheduled"))
	assert.Equal(t, "scheduled", normalizeStatus("created"))
	assert.Equal(t, "completed", normalizeStatus("closed"))
	assert.Equal(t, "completed", normalizeStatus("complete"))
	assert.Equal(t, "inprogress", normalizeStatus("inprogress"))
	assert.Equal(t, "inprogress", normalizeStatus("halted"))
}
