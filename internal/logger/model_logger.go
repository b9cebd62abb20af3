// Package logger provides model decision logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ModelLogger provides a dedicated trail of estimator outputs and the
// recommendations derived from them.
type ModelLogger struct {
	*logrus.Entry
}

// NewModelLogger creates a new model logger.
func NewModelLogger(baseLogger *logrus.Logger) *ModelLogger {
	return &ModelLogger{
		Entry: baseLogger.WithField("component", "model"),
	}
}

// LogPrediction logs a stored game prediction.
func (ml *ModelLogger) LogPrediction(predictionID, gameID, modelName, homeTeam, awayTeam string, homeWinProb, awayWinProb, tieProb, totalExpectedRuns float64) {
	ml.WithFields(logrus.Fields{
		"prediction_id":       predictionID,
		"game_id":             gameID,
		"model_name":          modelName,
		"home_team":           homeTeam,
		"away_team":           awayTeam,
		"home_win_prob":       homeWinProb,
		"away_win_prob":       awayWinProb,
		"tie_prob":            tieProb,
		"total_expected_runs": totalExpectedRuns,
	}).Info("Prediction recorded")
}

// LogValueBet logs a positive-expected-value moneyline recommendation.
func (ml *ModelLogger) LogValueBet(gameID, team, side string, americanOdds, winProbability, stake, expectedValue float64) {
	ml.WithFields(logrus.Fields{
		"game_id":         gameID,
		"team":            team,
		"side":            side,
		"american_odds":   americanOdds,
		"win_probability": winProbability,
		"stake":           stake,
		"expected_value":  expectedValue,
	}).Info("Value bet identified")
}

// LogSettlement logs the outcome of a prediction once the game completes.
func (ml *ModelLogger) LogSettlement(predictionID, gameID, predictedWinner, actualWinner string, correct bool, settledAt time.Time) {
	ml.WithFields(logrus.Fields{
		"prediction_id":    predictionID,
		"game_id":          gameID,
		"predicted_winner": predictedWinner,
		"actual_winner":    actualWinner,
		"correct":          correct,
		"settled_at":       settledAt.Unix(),
	}).Info("Prediction settled")
}

// LogAccuracy logs a rolling accuracy snapshot for a model.
func (ml *ModelLogger) LogAccuracy(modelName string, settled int, accuracy float64) {
	ml.WithFields(logrus.Fields{
		"model_name": modelName,
		"settled":    settled,
		"accuracy":   accuracy,
	}).Info("Model accuracy updated")
}

// LogIngestionRun logs a completed schedule ingestion pass.
func (ml *ModelLogger) LogIngestionRun(source string, datesFetched, gamesUpserted, errorsSeen int, duration time.Duration) {
	level := logrus.InfoLevel
	if errorsSeen > 0 {
		level = logrus.WarnLevel
	}
	ml.WithFields(logrus.Fields{
		"source":         source,
		"dates_fetched":  datesFetched,
		"games_upserted": gamesUpserted,
		"errors":         errorsSeen,
		"duration_ms":    duration.Milliseconds(),
	}).Log(level, "Ingestion run finished")
}
