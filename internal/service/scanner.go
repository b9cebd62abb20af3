package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/poisson"
	"github.com/yourusername/diamond-edge/internal/repository"
)

// ScannerConfig holds the knobs for a value scan.
type ScannerConfig struct {
	MaxRuns          int
	ModelName        string
	MinExpectedValue float64
	DefaultStake     float64
}

// ValueScanner walks the current moneyline board, models each matchup from
// the two teams' run profiles, stores the resulting prediction, and records
// a value bet for every side whose expected value clears the threshold.
type ValueScanner struct {
	oddsSource     datasource.OddsSource
	profiles       *ProfileBuilder
	gameRepo       repository.GameRepository
	predictionRepo repository.PredictionRepository
	valueBetRepo   repository.ValueBetRepository
	cfg            ScannerConfig
	log            *logrus.Logger
	modelLogger    *logger.ModelLogger
}

// NewValueScanner creates a new value scanner
func NewValueScanner(
	oddsSource datasource.OddsSource,
	profiles *ProfileBuilder,
	gameRepo repository.GameRepository,
	predictionRepo repository.PredictionRepository,
	valueBetRepo repository.ValueBetRepository,
	cfg ScannerConfig,
	log *logrus.Logger,
) *ValueScanner {
	if cfg.MaxRuns <= 0 {
		cfg.MaxRuns = poisson.DefaultMaxRuns
	}
	if cfg.DefaultStake <= 0 {
		cfg.DefaultStake = 100
	}

	return &ValueScanner{
		oddsSource:     oddsSource,
		profiles:       profiles,
		gameRepo:       gameRepo,
		predictionRepo: predictionRepo,
		valueBetRepo:   valueBetRepo,
		cfg:            cfg,
		log:            log,
		modelLogger:    logger.NewModelLogger(log),
	}
}

// ScanSlate evaluates every quoted moneyline and returns the value bets
// found. Matchups that cannot be modelled (missing profile, no scheduled
// game in the store) are skipped, not fatal.
func (s *ValueScanner) ScanSlate(ctx context.Context) ([]*models.ValueBet, error) {
	start := time.Now()
	defer func() {
		metrics.RecordScanDuration(time.Since(start).Seconds())
	}()

	lines, err := s.oddsSource.FetchMoneylines(ctx)
	if err != nil {
		var dsErr datasource.DataSourceError
		if errors.As(err, &dsErr) {
			metrics.RecordDataSourceError(dsErr.Source, dsErr.Code)
		}
		return nil, fmt.Errorf("failed to fetch moneylines: %w", err)
	}

	var found []*models.ValueBet
	for _, line := range lines {
		bets, err := s.evaluateLine(ctx, line)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"home": line.HomeTeam,
				"away": line.AwayTeam,
			}).Warn("Skipping matchup")
			continue
		}
		found = append(found, bets...)
	}

	s.log.WithFields(logrus.Fields{
		"lines":      len(lines),
		"value_bets": len(found),
	}).Info("Value scan complete")

	return found, nil
}

// evaluateLine models one quoted matchup and persists its prediction and any
// value bets.
func (s *ValueScanner) evaluateLine(ctx context.Context, line datasource.MoneylineData) ([]*models.ValueBet, error) {
	homeProfile, err := s.profiles.GetProfile(ctx, line.HomeTeam)
	if err != nil {
		return nil, err
	}
	awayProfile, err := s.profiles.GetProfile(ctx, line.AwayTeam)
	if err != nil {
		return nil, err
	}

	game, err := s.findGame(ctx, line)
	if err != nil {
		return nil, err
	}

	probs, err := poisson.EstimateGameProbabilities(
		homeProfile.AvgRunsScored,
		awayProfile.AvgRunsScored,
		homeProfile.AvgRunsAllowed,
		awayProfile.AvgRunsAllowed,
		s.cfg.MaxRuns,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to model matchup: %w", err)
	}

	if err := s.storePrediction(ctx, game, probs); err != nil {
		return nil, err
	}

	sides := []struct {
		team string
		side string
		prob float64
		odds float64
	}{
		{line.HomeTeam, models.BetSideHome, probs.HomeWinProb, line.HomeOdds},
		{line.AwayTeam, models.BetSideAway, probs.AwayWinProb, line.AwayOdds},
	}

	bets := make([]*models.ValueBet, 0, 2)
	for _, side := range sides {
		ev, err := poisson.ExpectedValue(side.prob, side.odds, s.cfg.DefaultStake)
		if err != nil {
			return nil, fmt.Errorf("failed to compute expected value: %w", err)
		}
		if ev < s.cfg.MinExpectedValue {
			continue
		}

		bet := &models.ValueBet{
			ID:             uuid.New(),
			GameID:         game.ID,
			Team:           side.team,
			Side:           side.side,
			AmericanOdds:   side.odds,
			WinProbability: side.prob,
			Stake:          decimal.NewFromFloat(s.cfg.DefaultStake),
			ExpectedValue:  decimal.NewFromFloat(ev).Round(2),
			CreatedAt:      time.Now().UTC(),
		}

		if err := s.valueBetRepo.Create(ctx, bet); err != nil {
			return nil, fmt.Errorf("failed to store value bet: %w", err)
		}

		metrics.RecordValueBet()
		s.modelLogger.LogValueBet(game.ID.String(), side.team, side.side, side.odds, side.prob, s.cfg.DefaultStake, ev)
		bets = append(bets, bet)
	}

	return bets, nil
}

// findGame matches a quoted line to a scheduled game by date and team names.
func (s *ValueScanner) findGame(ctx context.Context, line datasource.MoneylineData) (*models.Game, error) {
	date := line.CommenceTime.UTC().Truncate(24 * time.Hour)
	games, err := s.gameRepo.GetScheduledOn(ctx, date)
	if err != nil {
		return nil, err
	}

	for _, game := range games {
		if game.HomeTeam == line.HomeTeam && game.AwayTeam == line.AwayTeam {
			return game, nil
		}
	}

	return nil, fmt.Errorf("%w: no scheduled game for %s at %s on %s",
		models.ErrNotFound, line.AwayTeam, line.HomeTeam, date.Format(dateLayout))
}

// storePrediction records the model's outcome estimate for a game.
func (s *ValueScanner) storePrediction(ctx context.Context, game *models.Game, probs *poisson.GameProbabilities) error {
	winner := game.HomeTeam
	if probs.AwayWinProb > probs.HomeWinProb {
		winner = game.AwayTeam
	}

	pred := &models.Prediction{
		ID:               uuid.New(),
		GameID:           game.ID,
		ModelName:        s.cfg.ModelName,
		HomeWinProb:      probs.HomeWinProb,
		AwayWinProb:      probs.AwayWinProb,
		TieProb:          probs.TieProb,
		HomeExpectedRuns: probs.HomeExpectedRuns,
		AwayExpectedRuns: probs.AwayExpectedRuns,
		PredictedWinner:  winner,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.predictionRepo.Create(ctx, pred); err != nil {
		return fmt.Errorf("failed to store prediction: %w", err)
	}

	metrics.RecordPrediction()
	s.modelLogger.LogPrediction(
		pred.ID.String(), game.ID.String(), s.cfg.ModelName,
		game.HomeTeam, game.AwayTeam,
		probs.HomeWinProb, probs.AwayWinProb, probs.TieProb, probs.TotalExpectedRuns,
	)
	return nil
}
