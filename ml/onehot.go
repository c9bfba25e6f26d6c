package ml

import (
	"sort"

	"transit-delay-api/dataset"
	"transit-delay-api/models"
)

// NumericFeatures are passed through after the one-hot blocks, in this order.
var NumericFeatures = []string{"Hour", "Day_OfWeek", "Temperature", "Precipitation", "Event_Attendance"}

// Encoder one-hot encodes the three categorical columns against the category
// sets seen at fit time. Unknown categories transform to an all-zero block;
// they are never an error.
type Encoder struct {
	RouteIDs []string
	Weather  []string
	Events   []string
}

func FitEncoder(records []dataset.Record) *Encoder {
	routes := make(map[string]bool)
	weather := make(map[string]bool)
	events := make(map[string]bool)
	for _, r := range records {
		routes[r.RouteID] = true
		weather[r.WeatherCondition] = true
		events[r.EventType] = true
	}
	return &Encoder{
		RouteIDs: sortedKeys(routes),
		Weather:  sortedKeys(weather),
		Events:   sortedKeys(events),
	}
}

// NumFeatures is the width of the transformed vector.
func (e *Encoder) NumFeatures() int {
	return len(e.RouteIDs) + len(e.Weather) + len(e.Events) + len(NumericFeatures)
}

// FeatureNames returns the expanded feature names in transform order, e.g.
// "Route_ID_R-101" for one-hot positions and the raw column name for
// numeric passthrough features.
func (e *Encoder) FeatureNames() []string {
	names := make([]string, 0, e.NumFeatures())
	for _, r := range e.RouteIDs {
		names = append(names, "Route_ID_"+r)
	}
	for _, w := range e.Weather {
		names = append(names, "Weather_Condition_"+w)
	}
	for _, ev := range e.Events {
		names = append(names, "Event_Type_"+ev)
	}
	return append(names, NumericFeatures...)
}

func (e *Encoder) Transform(f models.TripFeatures) []float64 {
	x := make([]float64, e.NumFeatures())
	setOneHot(x, 0, e.RouteIDs, f.RouteID)
	setOneHot(x, len(e.RouteIDs), e.Weather, f.WeatherCondition)
	setOneHot(x, len(e.RouteIDs)+len(e.Weather), e.Events, f.EventType)

	n := len(e.RouteIDs) + len(e.Weather) + len(e.Events)
	x[n] = float64(f.Hour)
	x[n+1] = float64(f.DayOfWeek)
	x[n+2] = f.Temperature
	x[n+3] = f.Precipitation
	x[n+4] = float64(f.EventAttendance)
	return x
}

func setOneHot(x []float64, offset int, categories []string, value string) {
	i := sort.SearchStrings(categories, value)
	if i < len(categories) && categories[i] == value {
		x[offset+i] = 1
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
