package main

import (
	"fmt"
	"log"

	"transit-delay-api/config"
	"transit-delay-api/dataset"
	"transit-delay-api/handlers"
	"transit-delay-api/metrics"
	"transit-delay-api/middleware"
	"transit-delay-api/ml"
	"transit-delay-api/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Training dataset backs the route list and risk summary. The API still
	// starts without it, just with empty summaries.
	records, err := dataset.ReadCSV(cfg.Artifacts.DataPath)
	if err != nil {
		log.Printf("dataset unavailable: %v", err)
	} else {
		log.Printf("loaded %d training records from %s", len(records), cfg.Artifacts.DataPath)
	}

	// The model artifact is loaded once here and never mutated afterwards.
	pipeline, err := ml.Load(cfg.Artifacts.ModelPath)
	if err != nil {
		log.Printf("model unavailable, prediction endpoints will return 503: %v", err)
	} else {
		log.Printf("loaded model %s trained at %s", pipeline.Version, pipeline.TrainedAt.Format("2006-01-02 15:04:05"))
	}

	collector := metrics.NewCollector()
	if pipeline != nil {
		collector.ModelLoaded.Set(1)
	}

	cache := services.NewCacheService(cfg.Redis)
	defer cache.Close()

	var mapsClient services.TransitTimer
	if cfg.Maps.APIKey != "" {
		m, err := services.NewMapsService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("Failed to create maps client: %v", err)
		}
		mapsClient = m
	} else {
		log.Printf("GOOGLE_MAPS_API_KEY not set, predict-trip will return 503")
	}

	svc := services.NewPredictionService(pipeline, records)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	predictionHandler := handlers.NewPredictionHandler(svc, cache, mapsClient, collector)
	analysisHandler := handlers.NewAnalysisHandler(svc, cache)

	router.GET("/health", handlers.Health(svc))
	router.POST("/predict", predictionHandler.Predict)
	router.POST("/predict-trip", predictionHandler.PredictTrip)
	router.POST("/predict-trend", predictionHandler.PredictTrend)
	router.GET("/routes", analysisHandler.GetRoutes)
	router.GET("/route-risks", analysisHandler.GetRouteRisks)
	router.GET("/feature-importance", analysisHandler.GetFeatureImportance)
	router.GET("/ws/live", handlers.LiveWebSocket(cache))
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
