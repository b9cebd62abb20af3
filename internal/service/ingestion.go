package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/repository"
)

const dateLayout = "2006-01-02"

// IngestionService pulls the day-by-day MLB schedule from the stats feed and
// upserts games, completed ones carrying their final scores.
type IngestionService struct {
	source      datasource.GameSource
	gameRepo    repository.GameRepository
	validate    *validator.Validate
	stats       *IngestionStats
	log         *logrus.Logger
	modelLogger *logger.ModelLogger
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	source datasource.GameSource,
	gameRepo repository.GameRepository,
	log *logrus.Logger,
) *IngestionService {
	return &IngestionService{
		source:      source,
		gameRepo:    gameRepo,
		validate:    validator.New(),
		stats:       NewIngestionStats(),
		log:         log,
		modelLogger: logger.NewModelLogger(log),
	}
}

// IngestDateRange fetches and upserts every date in [startDate, endDate].
func (s *IngestionService) IngestDateRange(ctx context.Context, startDate, endDate time.Time) (*IngestionStats, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date %s precedes start date %s", endDate.Format(dateLayout), startDate.Format(dateLayout))
	}

	s.stats.Reset()
	startTime := time.Now()

	s.log.Infof("Starting schedule ingestion from %s (%s to %s)",
		s.source.Name(), startDate.Format(dateLayout), endDate.Format(dateLayout))

	for date := startDate; !date.After(endDate); date = date.Add(24 * time.Hour) {
		if err := ctx.Err(); err != nil {
			return s.stats, err
		}

		if err := s.IngestDate(ctx, date); err != nil {
			s.stats.RecordError()
			s.log.WithError(err).WithField("date", date.Format(dateLayout)).Error("Failed to ingest date")
			continue
		}
		s.stats.RecordDate()
	}

	s.stats.Duration = time.Since(startTime)
	metrics.RecordIngestionDuration(s.stats.Duration.Seconds())
	s.modelLogger.LogIngestionRun(s.source.Name(), s.stats.DatesFetched, s.stats.UpsertedGames, s.stats.Errors, s.stats.Duration)

	return s.stats, nil
}

// IngestDate fetches and upserts the games of a single date.
func (s *IngestionService) IngestDate(ctx context.Context, date time.Time) error {
	games, err := s.source.FetchGames(ctx, date)
	if err != nil {
		var dsErr datasource.DataSourceError
		if errors.As(err, &dsErr) {
			metrics.RecordDataSourceError(dsErr.Source, dsErr.Code)
		}
		return fmt.Errorf("failed to fetch games: %w", err)
	}

	for i := range games {
		s.stats.RecordGame()
		if err := s.upsertGame(ctx, &games[i]); err != nil {
			s.stats.RecordError()
			s.log.WithError(err).WithField("source_id", games[i].SourceID).Error("Failed to upsert game")
		}
	}

	return nil
}

// upsertGame normalizes, validates, and persists a single schedule entry.
func (s *IngestionService) upsertGame(ctx context.Context, data *datasource.GameData) error {
	game := s.normalizeGame(data)

	if err := s.validate.Struct(game); err != nil {
		s.stats.RecordValidationError()
		return fmt.Errorf("game validation failed: %w", err)
	}

	if err := s.gameRepo.Upsert(ctx, game); err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	s.stats.RecordUpsert()
	metrics.RecordGameIngested()
	return nil
}

// normalizeGame maps a feed schedule entry onto the stored game model.
func (s *IngestionService) normalizeGame(data *datasource.GameData) *models.Game {
	now := time.Now().UTC()
	return &models.Game{
		ID:        uuid.New(),
		SourceID:  data.SourceID,
		GameDate:  data.GameDate,
		HomeTeam:  data.HomeTeam,
		AwayTeam:  data.AwayTeam,
		HomeRuns:  data.HomeRuns,
		AwayRuns:  data.AwayRuns,
		Status:    data.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Stats returns the stats of the most recent ingestion run
func (s *IngestionService) Stats() *IngestionStats {
	return s.stats
}
