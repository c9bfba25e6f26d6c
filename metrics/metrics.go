package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Predictions      *prometheus.CounterVec // endpoint label: predict|predict_trip|predict_trend
	PredictionErrors *prometheus.CounterVec
	MapsLookups      *prometheus.CounterVec // status label: ok|error
	ModelLoaded      prometheus.Gauge

	PredictionDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_delay_predictions_total",
			Help: "Total predictions served.",
		}, []string{"endpoint"}),
		PredictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_delay_prediction_errors_total",
			Help: "Total failed prediction requests.",
		}, []string{"endpoint"}),
		MapsLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_delay_maps_lookups_total",
			Help: "Total Google Maps travel-time lookups.",
		}, []string{"status"}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transit_delay_model_loaded",
			Help: "1 if a trained pipeline is loaded, 0 otherwise.",
		}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transit_delay_prediction_duration_seconds",
			Help:    "Duration of model inference per request.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}

	reg.MustRegister(
		c.Predictions, c.PredictionErrors, c.MapsLookups,
		c.ModelLoaded, c.PredictionDuration,
	)
	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
