package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/repository"
)

// SettlementSummary reports the outcome of one settlement pass.
type SettlementSummary struct {
	Settled  int
	Correct  int
	Pending  int
	Accuracy float64
}

// ValidationService settles open predictions against final scores and tracks
// the model's rolling winner-pick accuracy.
type ValidationService struct {
	gameRepo       repository.GameRepository
	predictionRepo repository.PredictionRepository
	modelName      string
	windowDays     int
	log            *logrus.Logger
	modelLogger    *logger.ModelLogger
}

// NewValidationService creates a new validation service
func NewValidationService(
	gameRepo repository.GameRepository,
	predictionRepo repository.PredictionRepository,
	modelName string,
	windowDays int,
	log *logrus.Logger,
) *ValidationService {
	if windowDays <= 0 {
		windowDays = defaultProfileWindowDays
	}

	return &ValidationService{
		gameRepo:       gameRepo,
		predictionRepo: predictionRepo,
		modelName:      modelName,
		windowDays:     windowDays,
		log:            log,
		modelLogger:    logger.NewModelLogger(log),
	}
}

// SettleOpenPredictions grades every unsettled prediction whose game has a
// final score. A tied final counts against the prediction since the model
// always names a winner.
func (v *ValidationService) SettleOpenPredictions(ctx context.Context) (*SettlementSummary, error) {
	preds, err := v.predictionRepo.GetUnsettled(ctx, v.modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to load unsettled predictions: %w", err)
	}

	summary := &SettlementSummary{}
	for _, pred := range preds {
		game, err := v.gameRepo.GetByID(ctx, pred.GameID)
		if err != nil {
			v.log.WithError(err).WithField("game_id", pred.GameID).Warn("Failed to load game for settlement")
			continue
		}

		if !game.IsCompleted() {
			summary.Pending++
			continue
		}

		actual := game.WinnerName()
		correct := actual == pred.PredictedWinner
		settledAt := time.Now().UTC()

		if err := v.predictionRepo.Settle(ctx, pred.ID, correct, settledAt); err != nil {
			v.log.WithError(err).WithField("prediction_id", pred.ID).Error("Failed to settle prediction")
			continue
		}

		metrics.RecordPredictionSettled()
		v.modelLogger.LogSettlement(pred.ID.String(), game.ID.String(), pred.PredictedWinner, actual, correct, settledAt)

		summary.Settled++
		if correct {
			summary.Correct++
		}
	}

	metrics.UpdateUnsettledPredictions(float64(summary.Pending))

	since := time.Now().UTC().AddDate(0, 0, -v.windowDays)
	accuracy, err := v.predictionRepo.GetAccuracy(ctx, v.modelName, since)
	if err != nil {
		v.log.WithError(err).Warn("Failed to compute model accuracy")
		return summary, nil
	}

	summary.Accuracy = accuracy
	metrics.UpdateModelAccuracy(v.modelName, accuracy)
	v.modelLogger.LogAccuracy(v.modelName, summary.Settled, accuracy)

	return summary, nil
}
