package services

import (
	"errors"

	"transit-delay-api/dataset"
	"transit-delay-api/ml"
	"transit-delay-api/models"
)

// ErrModelUnavailable is returned by every prediction method when no trained
// pipeline was loaded at startup.
var ErrModelUnavailable = errors.New("model not loaded")

// Severity thresholds in minutes.
const (
	severityModerate = 10
	severityHigh     = 20
)

// PredictionService holds the read-only state built once at startup: the
// trained pipeline (possibly nil) and summaries of the training dataset. It
// is shared across requests without locking since nothing mutates after
// construction.
type PredictionService struct {
	pipeline *ml.Pipeline
	routes   []string
	risks    map[string]float64
}

func NewPredictionService(pipeline *ml.Pipeline, records []dataset.Record) *PredictionService {
	return &PredictionService{
		pipeline: pipeline,
		routes:   dataset.Routes(records),
		risks:    dataset.RouteRisks(records),
	}
}

func (s *PredictionService) ModelLoaded() bool {
	return s.pipeline != nil
}

// Predict returns the estimated extra delay in minutes, rounded to two
// decimals.
func (s *PredictionService) Predict(f models.TripFeatures) (float64, error) {
	if s.pipeline == nil {
		return 0, ErrModelUnavailable
	}
	return dataset.Round2(s.pipeline.Predict(f)), nil
}

// PredictTrend recomputes the prediction for every hour of the day, holding
// all other fields fixed. Always 24 points, hour 0 through 23.
func (s *PredictionService) PredictTrend(f models.TripFeatures) ([]models.TrendPoint, error) {
	if s.pipeline == nil {
		return nil, ErrModelUnavailable
	}
	trend := make([]models.TrendPoint, 24)
	for h := 0; h < 24; h++ {
		f.Hour = h
		trend[h] = models.TrendPoint{Hour: h, Delay: dataset.Round2(s.pipeline.Predict(f))}
	}
	return trend, nil
}

// Routes lists the distinct route identifiers in the training dataset,
// sorted.
func (s *PredictionService) Routes() []string {
	return s.routes
}

// RouteRisks maps each known route to its mean historical delay.
func (s *PredictionService) RouteRisks() map[string]float64 {
	return s.risks
}

func (s *PredictionService) FeatureImportance() ([]models.FeatureImportance, error) {
	if s.pipeline == nil {
		return nil, ErrModelUnavailable
	}
	return s.pipeline.FeatureImportances(), nil
}

// SeverityFor bands a predicted delay into Low / Moderate / High.
func SeverityFor(delayMinutes float64) string {
	switch {
	case delayMinutes > severityHigh:
		return "High"
	case delayMinutes > severityModerate:
		return "Moderate"
	default:
		return "Low"
	}
}
