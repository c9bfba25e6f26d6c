package models

// TripFeatures is the fixed-field feature record shared by the generator, the
// trainer and the serving layer. Field names mirror the dataset columns.
type TripFeatures struct {
	RouteID          string  `json:"Route_ID" binding:"required"`
	WeatherCondition string  `json:"Weather_Condition" binding:"required"`
	EventType        string  `json:"Event_Type" binding:"required"`
	Hour             int     `json:"Hour" binding:"min=0,max=23"`
	DayOfWeek        int     `json:"Day_OfWeek" binding:"min=0,max=6"`
	Temperature      float64 `json:"Temperature"`
	Precipitation    float64 `json:"Precipitation" binding:"min=0"`
	EventAttendance  int     `json:"Event_Attendance" binding:"min=0"`
}

// TripRequest is the predict-trip payload: features plus the two location
// strings handed to the maps lookup.
type TripRequest struct {
	TripFeatures
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

type PredictionResponse struct {
	PredictedDelayMinutes float64 `json:"predicted_delay_minutes"`
	Severity              string  `json:"severity"`
}

type TripResponse struct {
	BaseTime            float64 `json:"base_time"`
	PredictedExtraDelay float64 `json:"predicted_extra_delay"`
	TotalTime           float64 `json:"total_time"`
	Units               string  `json:"units"`
}

type TrendPoint struct {
	Hour  int     `json:"hour"`
	Delay float64 `json:"delay"`
}

type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// LivePrediction is the message published on the Redis live channel and
// relayed to WebSocket subscribers after each successful prediction.
type LivePrediction struct {
	RouteID               string  `json:"route_id"`
	PredictedDelayMinutes float64 `json:"predicted_delay_minutes"`
	Severity              string  `json:"severity"`
}
