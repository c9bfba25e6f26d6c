package handlers

import (
	"context"
	"net/http"
	"time"

	"transit-delay-api/models"
	"transit-delay-api/services"

	"github.com/gin-gonic/gin"
)

const analysisCacheTTL = 60 * time.Second

// AnalysisHandler serves the dataset- and model-derived summaries the
// dashboard loads once per visit: route list, per-route risk and feature
// importances.
type AnalysisHandler struct {
	svc   *services.PredictionService
	cache *services.CacheService
}

func NewAnalysisHandler(svc *services.PredictionService, cache *services.CacheService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, cache: cache}
}

func (h *AnalysisHandler) GetRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routes": h.svc.Routes()})
}

func (h *AnalysisHandler) GetRouteRisks(c *gin.Context) {
	const cacheKey = "route-risks:all"

	var cached map[string]float64
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	risks := h.svc.RouteRisks()
	go h.cache.Set(context.Background(), cacheKey, risks, analysisCacheTTL)

	c.JSON(http.StatusOK, risks)
}

func (h *AnalysisHandler) GetFeatureImportance(c *gin.Context) {
	const cacheKey = "feature-importance:all"

	var cached []models.FeatureImportance
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	features, err := h.svc.FeatureImportance()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	go h.cache.Set(context.Background(), cacheKey, features, analysisCacheTTL)

	c.JSON(http.StatusOK, features)
}
