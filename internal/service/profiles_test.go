package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/models"
)

func completedGame(home, away string, homeRuns, awayRuns int, date time.Time) *models.Game {
	return &models.Game{
		ID:       uuid.New(),
		SourceID: uuid.NewString(),
		GameDate: date,
		HomeTeam: home,
		AwayTeam: away,
		HomeRuns: intPtr(homeRuns),
		AwayRuns: intPtr(awayRuns),
		Status:   models.GameStatusCompleted,
	}
}

func TestProfileBuilderRebuildProfiles(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	gameRepo := &fakeGameRepo{
		games: []*models.Game{
			completedGame("New York Yankees", "Boston Red Sox", 5, 3, yesterday),
			completedGame("Boston Red Sox", "New York Yankees", 2, 7, yesterday),
		},
	}
	profileRepo := newFakeProfileRepo()

	builder := NewProfileBuilder(gameRepo, profileRepo, 30, time.Minute, discardLogger())

	count, err := builder.RebuildProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	yankees := profileRepo.profiles["New York Yankees"]
	require.NotNil(t, yankees)
	assert.Equal(t, 2, yankees.GamesPlayed)
	assert.InDelta(t, 6.0, yankees.AvgRunsScored, 1e-9)  // (5+7)/2
	assert.InDelta(t, 2.5, yankees.AvgRunsAllowed, 1e-9) // (3+2)/2

	redSox := profileRepo.profiles["Boston Red Sox"]
	require.NotNil(t, redSox)
	assert.InDelta(t, 2.5, redSox.AvgRunsScored, 1e-9)
	assert.InDelta(t, 6.0, redSox.AvgRunsAllowed, 1e-9)
}

func TestProfileBuilderIgnoresUnfinishedGames(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	scheduled := &models.Game{
		ID:       uuid.New(),
		SourceID: uuid.NewString(),
		GameDate: yesterday,
		HomeTeam: "Chicago Cubs",
		AwayTeam: "St. Louis Cardinals",
		Status:   models.GameStatusScheduled,
	}
	gameRepo := &fakeGameRepo{games: []*models.Game{scheduled}}

	builder := NewProfileBuilder(gameRepo, newFakeProfileRepo(), 30, time.Minute, discardLogger())

	count, err := builder.RebuildProfiles(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProfileBuilderGetProfileCaches(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	profileRepo.profiles["New York Yankees"] = &models.TeamRunProfile{
		Team:           "New York Yankees",
		AvgRunsScored:  5.1,
		AvgRunsAllowed: 4.2,
		GamesPlayed:    20,
	}

	builder := NewProfileBuilder(&fakeGameRepo{}, profileRepo, 30, time.Minute, discardLogger())

	profile, err := builder.GetProfile(context.Background(), "New York Yankees")
	require.NoError(t, err)
	assert.Equal(t, 5.1, profile.AvgRunsScored)

	// Served from cache even after the backing row disappears.
	delete(profileRepo.profiles, "New York Yankees")
	profile, err = builder.GetProfile(context.Background(), "New York Yankees")
	require.NoError(t, err)
	assert.Equal(t, 5.1, profile.AvgRunsScored)

	builder.InvalidateCache()
	_, err = builder.GetProfile(context.Background(), "New York Yankees")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProfileBuilderGetProfileUnavailable(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	profileRepo.profiles["Miami Marlins"] = &models.TeamRunProfile{Team: "Miami Marlins"}

	builder := NewProfileBuilder(&fakeGameRepo{}, profileRepo, 30, time.Minute, discardLogger())

	_, err := builder.GetProfile(context.Background(), "Miami Marlins")
	assert.ErrorIs(t, err, models.ErrProfileUnavailable)
}
