package handlers

import (
	"context"
	"net/http"
	"time"

	"transit-delay-api/dataset"
	"transit-delay-api/metrics"
	"transit-delay-api/models"
	"transit-delay-api/services"

	"github.com/gin-gonic/gin"
)

// LiveChannel is the Redis pub/sub channel carrying every served prediction.
const LiveChannel = "transit:predictions"

type PredictionHandler struct {
	svc     *services.PredictionService
	cache   *services.CacheService
	maps    services.TransitTimer // nil when no API key is configured
	metrics *metrics.Collector
}

func NewPredictionHandler(svc *services.PredictionService, cache *services.CacheService, maps services.TransitTimer, m *metrics.Collector) *PredictionHandler {
	return &PredictionHandler{svc: svc, cache: cache, maps: maps, metrics: m}
}

func (h *PredictionHandler) Predict(c *gin.Context) {
	var req models.TripFeatures
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	delay, err := h.svc.Predict(req)
	if err != nil {
		h.metrics.PredictionErrors.WithLabelValues("predict").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	h.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	h.metrics.Predictions.WithLabelValues("predict").Inc()

	severity := services.SeverityFor(delay)
	go h.cache.Publish(context.Background(), LiveChannel, models.LivePrediction{
		RouteID:               req.RouteID,
		PredictedDelayMinutes: delay,
		Severity:              severity,
	})

	c.JSON(http.StatusOK, models.PredictionResponse{
		PredictedDelayMinutes: delay,
		Severity:              severity,
	})
}

// PredictTrip combines the Google Maps base travel time with the predicted
// extra delay. Input validation happens before any network or inference call;
// a failed lookup yields a 500 with the reason, never a partial response.
func (h *PredictionHandler) PredictTrip(c *gin.Context) {
	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.svc.ModelLoaded() {
		h.metrics.PredictionErrors.WithLabelValues("predict_trip").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrModelUnavailable.Error()})
		return
	}
	if h.maps == nil {
		h.metrics.PredictionErrors.WithLabelValues("predict_trip").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "maps client not configured"})
		return
	}

	baseTime, err := h.maps.TransitTime(c.Request.Context(), req.Origin, req.Destination)
	if err != nil {
		h.metrics.MapsLookups.WithLabelValues("error").Inc()
		h.metrics.PredictionErrors.WithLabelValues("predict_trip").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.metrics.MapsLookups.WithLabelValues("ok").Inc()

	delay, err := h.svc.Predict(req.TripFeatures)
	if err != nil {
		h.metrics.PredictionErrors.WithLabelValues("predict_trip").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	h.metrics.Predictions.WithLabelValues("predict_trip").Inc()

	c.JSON(http.StatusOK, models.TripResponse{
		BaseTime:            dataset.Round2(baseTime),
		PredictedExtraDelay: delay,
		TotalTime:           dataset.Round2(baseTime + delay),
		Units:               "minutes",
	})
}

// PredictTrend recomputes the prediction for each hour 0..23; the Hour field
// of the request is ignored.
func (h *PredictionHandler) PredictTrend(c *gin.Context) {
	var req models.TripFeatures
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trend, err := h.svc.PredictTrend(req)
	if err != nil {
		h.metrics.PredictionErrors.WithLabelValues("predict_trend").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	h.metrics.Predictions.WithLabelValues("predict_trend").Inc()

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
