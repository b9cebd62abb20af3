// Package metrics provides the centralized Prometheus metrics registry for the analytics service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "games_ingested_total",
		Help:      "Total number of games upserted from the stats feed",
	})
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "predictions_total",
		Help:      "Total number of game predictions stored",
	})
	PredictionsSettledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "predictions_settled_total",
		Help:      "Total number of predictions settled against final scores",
	})
	ValueBetsFoundTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "value_bets_found_total",
		Help:      "Total number of positive expected value moneylines identified",
	})
	DataSourceErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "data_source_errors_total",
		Help:      "Total number of data source request failures",
	}, []string{"source", "code"})
)

// Gauge metrics
var (
	ModelAccuracy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "diamond_edge",
		Name:      "model_accuracy",
		Help:      "Rolling winner-pick accuracy per model",
	}, []string{"model_name"})
	TeamProfilesTracked = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "diamond_edge",
		Name:      "team_profiles_tracked",
		Help:      "Number of teams with a usable run profile",
	})
	UnsettledPredictions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "diamond_edge",
		Name:      "unsettled_predictions",
		Help:      "Number of predictions awaiting a final score",
	})
)

// Histogram metrics
var (
	ScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "diamond_edge",
		Name:      "scan_duration_seconds",
		Help:      "Duration of a full value scan across the day's slate",
		Buckets:   prometheus.DefBuckets,
	})
	IngestionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "diamond_edge",
		Name:      "ingestion_duration_seconds",
		Help:      "Duration of a schedule ingestion pass in seconds",
		Buckets:   []float64{0.5, 1, 5, 10, 30, 60, 300, 600},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(GamesIngestedTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PredictionsSettledTotal)
		registry.MustRegister(ValueBetsFoundTotal)
		registry.MustRegister(DataSourceErrorsTotal)

		// Register gauge metrics
		registry.MustRegister(ModelAccuracy)
		registry.MustRegister(TeamProfilesTracked)
		registry.MustRegister(UnsettledPredictions)

		// Register histogram metrics
		registry.MustRegister(ScanDuration)
		registry.MustRegister(IngestionDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordGameIngested records one game upserted into the store.
func RecordGameIngested() {
	GamesIngestedTotal.Inc()
}

// RecordPrediction records a stored prediction.
func RecordPrediction() {
	PredictionsTotal.Inc()
}

// RecordPredictionSettled records a settled prediction.
func RecordPredictionSettled() {
	PredictionsSettledTotal.Inc()
}

// RecordValueBet records an identified value bet.
func RecordValueBet() {
	ValueBetsFoundTotal.Inc()
}

// RecordDataSourceError records a failed request against a data source.
func RecordDataSourceError(source, code string) {
	DataSourceErrorsTotal.WithLabelValues(source, code).Inc()
}

// UpdateModelAccuracy updates the rolling accuracy gauge for a model.
func UpdateModelAccuracy(modelName string, accuracy float64) {
	ModelAccuracy.WithLabelValues(modelName).Set(accuracy)
}

// UpdateTeamProfilesTracked updates the tracked profile count gauge.
func UpdateTeamProfilesTracked(count float64) {
	TeamProfilesTracked.Set(count)
}

// UpdateUnsettledPredictions updates the unsettled prediction gauge.
func UpdateUnsettledPredictions(count float64) {
	UnsettledPredictions.Set(count)
}

// RecordScanDuration records the duration of a value scan.
func RecordScanDuration(durationSeconds float64) {
	ScanDuration.Observe(durationSeconds)
}

// RecordIngestionDuration records the duration of an ingestion pass.
func RecordIngestionDuration(durationSeconds float64) {
	IngestionDuration.Observe(durationSeconds)
}
