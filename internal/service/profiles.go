package service

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/repository"
)

const defaultProfileWindowDays = 30

// ProfileBuilder aggregates completed games into per-team run profiles: the
// average runs scored and allowed per game over a rolling window. Profiles
// feed the run estimator, so a team with no completed games in the window is
// reported as unavailable rather than as a zero-rate profile.
type ProfileBuilder struct {
	gameRepo    repository.GameRepository
	profileRepo repository.TeamProfileRepository
	cache       *cache.Cache
	windowDays  int
	log         *logrus.Logger
}

// NewProfileBuilder creates a new profile builder
func NewProfileBuilder(
	gameRepo repository.GameRepository,
	profileRepo repository.TeamProfileRepository,
	windowDays int,
	cacheTTL time.Duration,
	log *logrus.Logger,
) *ProfileBuilder {
	if windowDays <= 0 {
		windowDays = defaultProfileWindowDays
	}

	return &ProfileBuilder{
		gameRepo:    gameRepo,
		profileRepo: profileRepo,
		cache:       cache.New(cacheTTL, 2*cacheTTL),
		windowDays:  windowDays,
		log:         log,
	}
}

// RebuildProfiles recomputes every team's run profile from the completed
// games inside the window and persists the results. Returns the number of
// teams with a usable profile.
func (b *ProfileBuilder) RebuildProfiles(ctx context.Context) (int, error) {
	since := time.Now().UTC().AddDate(0, 0, -b.windowDays)

	games, err := b.gameRepo.GetCompletedSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to load completed games: %w", err)
	}

	type tally struct {
		scored  float64
		allowed float64
		played  int
	}
	tallies := make(map[string]*tally)
	record := func(team string, scored, allowed int) {
		t, ok := tallies[team]
		if !ok {
			t = &tally{}
			tallies[team] = t
		}
		t.scored += float64(scored)
		t.allowed += float64(allowed)
		t.played++
	}

	for _, game := range games {
		if !game.IsCompleted() {
			continue
		}
		record(game.HomeTeam, *game.HomeRuns, *game.AwayRuns)
		record(game.AwayTeam, *game.AwayRuns, *game.HomeRuns)
	}

	now := time.Now().UTC()
	count := 0
	for team, t := range tallies {
		profile := &models.TeamRunProfile{
			Team:           team,
			AvgRunsScored:  t.scored / float64(t.played),
			AvgRunsAllowed: t.allowed / float64(t.played),
			GamesPlayed:    t.played,
			UpdatedAt:      now,
		}

		if err := b.profileRepo.Upsert(ctx, profile); err != nil {
			b.log.WithError(err).WithField("team", team).Error("Failed to upsert team profile")
			continue
		}

		b.cache.Set(team, profile, cache.DefaultExpiration)
		count++
	}

	metrics.UpdateTeamProfilesTracked(float64(count))
	b.log.WithFields(logrus.Fields{
		"teams":       count,
		"games":       len(games),
		"window_days": b.windowDays,
	}).Info("Team run profiles rebuilt")

	return count, nil
}

// GetProfile returns the run profile for a team, serving from cache when
// fresh. Teams without a data-backed profile yield ErrProfileUnavailable.
func (b *ProfileBuilder) GetProfile(ctx context.Context, team string) (*models.TeamRunProfile, error) {
	if cached, found := b.cache.Get(team); found {
		return cached.(*models.TeamRunProfile), nil
	}

	profile, err := b.profileRepo.GetByTeam(ctx, team)
	if err != nil {
		return nil, err
	}

	if !profile.HasData() {
		return nil, fmt.Errorf("%w: %s", models.ErrProfileUnavailable, team)
	}

	b.cache.Set(team, profile, cache.DefaultExpiration)
	return profile, nil
}

// InvalidateCache drops all cached profiles.
func (b *ProfileBuilder) InvalidateCache() {
	b.cache.Flush()
}
