package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/models"
)

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeGameRepo struct {
	games   []*models.Game
	upserts int
}

func (r *fakeGameRepo) Upsert(ctx context.Context, game *models.Game) error {
	r.upserts++
	for i, existing := range r.games {
		if existing.SourceID == game.SourceID {
			r.games[i] = game
			return nil
		}
	}
	r.games = append(r.games, game)
	return nil
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	for _, game := range r.games {
		if game.ID == id {
			return game, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeGameRepo) GetBySourceID(ctx context.Context, sourceID string) (*models.Game, error) {
	for _, game := range r.games {
		if game.SourceID == sourceID {
			return game, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeGameRepo) GetCompletedSince(ctx context.Context, since time.Time) ([]*models.Game, error) {
	var out []*models.Game
	for _, game := range r.games {
		if game.IsCompleted() && !game.GameDate.Before(since) {
			out = append(out, game)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) GetScheduledOn(ctx context.Context, date time.Time) ([]*models.Game, error) {
	var out []*models.Game
	for _, game := range r.games {
		if game.Status == models.GameStatusScheduled && game.GameDate.Equal(date) {
			out = append(out, game)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.TeamRunProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*models.TeamRunProfile)}
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *models.TeamRunProfile) error {
	r.profiles[profile.Team] = profile
	return nil
}

func (r *fakeProfileRepo) GetByTeam(ctx context.Context, team string) (*models.TeamRunProfile, error) {
	profile, ok := r.profiles[team]
	if !ok {
		return nil, models.ErrNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) GetAll(ctx context.Context) ([]*models.TeamRunProfile, error) {
	out := make([]*models.TeamRunProfile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		out = append(out, profile)
	}
	return out, nil
}

type fakePredictionRepo struct {
	predictions []*models.Prediction
	accuracy    float64
}

func (r *fakePredictionRepo) Create(ctx context.Context, prediction *models.Prediction) error {
	r.predictions = append(r.predictions, prediction)
	return nil
}

func (r *fakePredictionRepo) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Prediction, error) {
	var out []*models.Prediction
	for _, pred := range r.predictions {
		if pred.GameID == gameID {
			out = append(out, pred)
		}
	}
	return out, nil
}

func (r *fakePredictionRepo) GetUnsettled(ctx context.Context, modelName string) ([]*models.Prediction, error) {
	var out []*models.Prediction
	for _, pred := range r.predictions {
		if pred.ModelName == modelName && !pred.IsSettled() {
			out = append(out, pred)
		}
	}
	return out, nil
}

func (r *fakePredictionRepo) Settle(ctx context.Context, id uuid.UUID, correct bool, settledAt time.Time) error {
	for _, pred := range r.predictions {
		if pred.ID == id {
			c := correct
			t := settledAt
			pred.Correct = &c
			pred.SettledAt = &t
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakePredictionRepo) GetAccuracy(ctx context.Context, modelName string, since time.Time) (float64, error) {
	return r.accuracy, nil
}

type fakeValueBetRepo struct {
	bets []*models.ValueBet
}

func (r *fakeValueBetRepo) Create(ctx context.Context, bet *models.ValueBet) error {
	r.bets = append(r.bets, bet)
	return nil
}

func (r *fakeValueBetRepo) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.ValueBet, error) {
	var out []*models.ValueBet
	for _, bet := range r.bets {
		if bet.GameID == gameID {
			out = append(out, bet)
		}
	}
	return out, nil
}

func (r *fakeValueBetRepo) GetRecent(ctx context.Context, limit int) ([]*models.ValueBet, error) {
	if limit > len(r.bets) {
		limit = len(r.bets)
	}
	return r.bets[len(r.bets)-limit:], nil
}

type fakeGameSource struct {
	gamesByDate map[string][]datasource.GameData
	err         error
}

func (s *fakeGameSource) FetchGames(ctx context.Context, date time.Time) ([]datasource.GameData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.gamesByDate[date.Format("2006-01-02")], nil
}

func (s *fakeGameSource) Name() string { return "fake_stats" }

type fakeOddsSource struct {
	lines []datasource.MoneylineData
	err   error
}

func (s *fakeOddsSource) FetchMoneylines(ctx context.Context) ([]datasource.MoneylineData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.lines, nil
}

func (s *fakeOddsSource) Name() string { return "fake_odds" }

func intPtr(v int) *int { return &v }
