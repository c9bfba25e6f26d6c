package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"transit-delay-api/config"
	"transit-delay-api/dataset"
	"transit-delay-api/metrics"
	"transit-delay-api/ml"
	"transit-delay-api/models"
	"transit-delay-api/services"

	"github.com/gin-gonic/gin"
)

type stubMaps struct {
	minutes float64
	err     error
}

func (s stubMaps) TransitTime(ctx context.Context, origin, destination string) (float64, error) {
	return s.minutes, s.err
}

func testService(t *testing.T) *services.PredictionService {
	t.Helper()
	records := dataset.Generate(dataset.FallbackRoutes, 120, 42)
	pipeline, _, err := ml.Train(records, ml.TrainOptions{
		Forest:       ml.ForestOptions{Trees: 10, MaxDepth: 6, Seed: 42},
		TestFraction: 0.2,
		SplitSeed:    42,
	})
	if err != nil {
		t.Fatalf("training test pipeline: %v", err)
	}
	return services.NewPredictionService(pipeline, records)
}

func newRouter(svc *services.PredictionService, maps services.TransitTimer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cache := services.NewCacheService(config.RedisConfig{})

	predictionHandler := NewPredictionHandler(svc, cache, maps, metrics.NewCollector())
	analysisHandler := NewAnalysisHandler(svc, cache)

	r := gin.New()
	r.GET("/health", Health(svc))
	r.POST("/predict", predictionHandler.Predict)
	r.POST("/predict-trip", predictionHandler.PredictTrip)
	r.POST("/predict-trend", predictionHandler.PredictTrend)
	r.GET("/routes", analysisHandler.GetRoutes)
	r.GET("/route-risks", analysisHandler.GetRouteRisks)
	r.GET("/feature-importance", analysisHandler.GetFeatureImportance)
	r.GET("/ws/live", LiveWebSocket(cache))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validFeatures() models.TripFeatures {
	return models.TripFeatures{
		RouteID:          "R-101",
		WeatherCondition: "Rainy",
		EventType:        "None",
		Hour:             8,
		DayOfWeek:        0,
		Temperature:      25,
		Precipitation:    20,
	}
}

func TestHealth(t *testing.T) {
	t.Run("model loaded", func(t *testing.T) {
		r := newRouter(testService(t), nil)
		w := getPath(r, "/health")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var resp struct {
			Status      string `json:"status"`
			ModelLoaded bool   `json:"model_loaded"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Status != "UP" || !resp.ModelLoaded {
			t.Errorf("resp = %+v, want UP with model loaded", resp)
		}
	})

	t.Run("no model", func(t *testing.T) {
		r := newRouter(services.NewPredictionService(nil, nil), nil)
		w := getPath(r, "/health")
		var resp struct {
			ModelLoaded bool `json:"model_loaded"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.ModelLoaded {
			t.Error("model_loaded should be false")
		}
	})
}

func TestPredict(t *testing.T) {
	r := newRouter(testService(t), nil)

	t.Run("ok", func(t *testing.T) {
		w := postJSON(t, r, "/predict", validFeatures())
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var resp models.PredictionResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.PredictedDelayMinutes < 0 {
			t.Errorf("predicted_delay_minutes = %v, want >= 0", resp.PredictedDelayMinutes)
		}
		switch {
		case resp.PredictedDelayMinutes > 20 && resp.Severity != "High":
			t.Errorf("delay %v should be High, got %s", resp.PredictedDelayMinutes, resp.Severity)
		case resp.PredictedDelayMinutes > 10 && resp.PredictedDelayMinutes <= 20 && resp.Severity != "Moderate":
			t.Errorf("delay %v should be Moderate, got %s", resp.PredictedDelayMinutes, resp.Severity)
		case resp.PredictedDelayMinutes <= 10 && resp.Severity != "Low":
			t.Errorf("delay %v should be Low, got %s", resp.PredictedDelayMinutes, resp.Severity)
		}
	})

	t.Run("unknown categories accepted", func(t *testing.T) {
		f := validFeatures()
		f.RouteID = "UNSEEN-42"
		f.WeatherCondition = "Hail"
		w := postJSON(t, r, "/predict", f)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, unknown categories must not be rejected", w.Code)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		w := postJSON(t, r, "/predict", map[string]interface{}{"Hour": 8})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("no model", func(t *testing.T) {
		bare := newRouter(services.NewPredictionService(nil, nil), nil)
		w := postJSON(t, bare, "/predict", validFeatures())
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})
}

func TestPredictTrip(t *testing.T) {
	svc := testService(t)

	tripBody := func() map[string]interface{} {
		return map[string]interface{}{
			"origin":            "Vijayawada",
			"destination":       "Guntur",
			"Route_ID":          "R-101",
			"Weather_Condition": "Rainy",
			"Event_Type":        "None",
			"Hour":              8,
			"Day_OfWeek":        0,
			"Temperature":       25.0,
			"Precipitation":     20.0,
		}
	}

	t.Run("ok", func(t *testing.T) {
		r := newRouter(svc, stubMaps{minutes: 42.5})
		w := postJSON(t, r, "/predict-trip", tripBody())
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var resp models.TripResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.BaseTime != 42.5 {
			t.Errorf("base_time = %v, want 42.5", resp.BaseTime)
		}
		want := dataset.Round2(resp.BaseTime + resp.PredictedExtraDelay)
		if resp.TotalTime != want {
			t.Errorf("total_time = %v, want %v", resp.TotalTime, want)
		}
		if resp.Units != "minutes" {
			t.Errorf("units = %q", resp.Units)
		}
	})

	t.Run("maps failure surfaces reason", func(t *testing.T) {
		r := newRouter(svc, stubMaps{err: errors.New("simulated timeout")})
		w := postJSON(t, r, "/predict-trip", tripBody())
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
		var resp struct {
			Error string `json:"error"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Error != "simulated timeout" {
			t.Errorf("error = %q, want the underlying reason", resp.Error)
		}
	})

	t.Run("missing origin", func(t *testing.T) {
		r := newRouter(svc, stubMaps{minutes: 10})
		body := tripBody()
		delete(body, "origin")
		w := postJSON(t, r, "/predict-trip", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("no maps client", func(t *testing.T) {
		r := newRouter(svc, nil)
		w := postJSON(t, r, "/predict-trip", tripBody())
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})

	t.Run("no model", func(t *testing.T) {
		r := newRouter(services.NewPredictionService(nil, nil), stubMaps{minutes: 10})
		w := postJSON(t, r, "/predict-trip", tripBody())
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})
}

func TestPredictTrend(t *testing.T) {
	r := newRouter(testService(t), nil)
	w := postJSON(t, r, "/predict-trend", validFeatures())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Trend []models.TrendPoint `json:"trend"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Trend) != 24 {
		t.Fatalf("got %d trend points, want 24", len(resp.Trend))
	}
	for h, p := range resp.Trend {
		if p.Hour != h {
			t.Errorf("point %d has hour %d", h, p.Hour)
		}
	}
}

func TestRoutesEndpoint(t *testing.T) {
	r := newRouter(testService(t), nil)
	w := getPath(r, "/routes")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Routes []string `json:"routes"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Routes) == 0 {
		t.Fatal("routes should not be empty")
	}
	for i := 1; i < len(resp.Routes); i++ {
		if resp.Routes[i] < resp.Routes[i-1] {
			t.Fatalf("routes not sorted: %v", resp.Routes)
		}
	}
}

func TestRouteRisksEndpoint(t *testing.T) {
	r := newRouter(testService(t), nil)
	w := getPath(r, "/route-risks")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var risks map[string]float64
	json.Unmarshal(w.Body.Bytes(), &risks)
	if len(risks) == 0 {
		t.Fatal("route risks should not be empty")
	}
}

func TestFeatureImportanceEndpoint(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		r := newRouter(testService(t), nil)
		w := getPath(r, "/feature-importance")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var features []models.FeatureImportance
		json.Unmarshal(w.Body.Bytes(), &features)
		if len(features) == 0 {
			t.Fatal("feature importances should not be empty")
		}
		for i := 1; i < len(features); i++ {
			if features[i].Importance > features[i-1].Importance {
				t.Fatalf("importances not descending at %d", i)
			}
		}
	})

	t.Run("no model", func(t *testing.T) {
		r := newRouter(services.NewPredictionService(nil, nil), nil)
		w := getPath(r, "/feature-importance")
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})
}

func TestLiveWebSocketWithoutRedis(t *testing.T) {
	r := newRouter(testService(t), nil)
	w := getPath(r, "/ws/live")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 without a cache backend", w.Code)
	}
}
