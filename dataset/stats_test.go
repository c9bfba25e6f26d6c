package dataset

import (
	"reflect"
	"testing"

	"transit-delay-api/models"
)

func labeled(route string, delay float64) Record {
	return Record{
		TripFeatures: models.TripFeatures{RouteID: route, WeatherCondition: "Sunny", EventType: "None"},
		DelayMinutes: delay,
	}
}

func TestRoutesSortedDistinct(t *testing.T) {
	records := []Record{
		labeled("R-202", 1),
		labeled("R-101", 2),
		labeled("R-202", 3),
		labeled("R-103", 4),
	}
	got := Routes(records)
	want := []string{"R-101", "R-103", "R-202"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Routes() = %v, want %v", got, want)
	}
}

func TestRouteRisks(t *testing.T) {
	records := []Record{
		labeled("R-101", 10),
		labeled("R-101", 15),
		labeled("R-201", 1),
		labeled("R-201", 1),
		labeled("R-201", 0),
	}
	got := RouteRisks(records)
	want := map[string]float64{
		"R-101": 12.5,
		"R-201": 0.67,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RouteRisks() = %v, want %v", got, want)
	}
}

func TestRouteRisksKeysMatchDataset(t *testing.T) {
	records := Generate(FallbackRoutes, 300, 42)
	risks := RouteRisks(records)
	routes := Routes(records)

	if len(risks) != len(routes) {
		t.Fatalf("risk map has %d keys, dataset has %d routes", len(risks), len(routes))
	}
	for _, route := range routes {
		if _, ok := risks[route]; !ok {
			t.Errorf("risk map missing route %q", route)
		}
	}
}
