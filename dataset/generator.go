package dataset

import (
	"math/rand"
	"time"

	"transit-delay-api/models"
)

// Category pools sampled by the generator. Inference additionally accepts the
// wider sets in schema.go.
var (
	generatorWeather = []string{"Sunny", "Rainy", "Cloudy", "Snowy", "Foggy"}
	generatorEvents  = []string{"None", "Sports", "Concert", "Festival", "Protest"}
)

var attendanceRanges = map[string][2]int{
	"Sports":   {20000, 60000},
	"Concert":  {10000, 40000},
	"Festival": {50000, 100000},
	"Protest":  {5000, 20000},
}

// Generate produces n labeled samples from a single seeded random stream.
// The draw order per sample is fixed (date, route, weather, event, hour,
// temperature, precipitation, attendance, noise), so the same seed and n
// always yield the identical dataset.
func Generate(routes []string, n int, seed int64) []Record {
	rng := rand.New(rand.NewSource(seed))

	// Date pool: n consecutive days. Dates may repeat across samples; the
	// date itself is not a feature, only the derived weekday is.
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		date := dates[rng.Intn(len(dates))]
		route := routes[rng.Intn(len(routes))]
		weather := generatorWeather[rng.Intn(len(generatorWeather))]
		event := generatorEvents[rng.Intn(len(generatorEvents))]

		hour := 5 + rng.Intn(19) // operating hours 05:00-23:00
		dayOfWeek := weekdayMondayZero(date)

		temperature := rng.NormFloat64()*5 + 30
		switch weather {
		case "Rainy":
			temperature -= 3
		case "Snowy":
			temperature = -5 + rng.Float64()*7
		case "Sunny":
			temperature += 2
		}

		precipitation := 0.0
		if weather == "Rainy" || weather == "Snowy" {
			precipitation = 5 + rng.Float64()*45
		}

		attendance := 0
		if r, ok := attendanceRanges[event]; ok {
			attendance = r[0] + rng.Intn(r[1]-r[0]+1)
		}

		base := baseDelay(route, hour, dayOfWeek, temperature, precipitation, event, attendance)
		delay := base + rng.NormFloat64()*5
		if delay < 0 {
			delay = 0
		}

		records = append(records, Record{
			TripFeatures: models.TripFeatures{
				RouteID:          route,
				WeatherCondition: weather,
				EventType:        event,
				Hour:             hour,
				DayOfWeek:        dayOfWeek,
				Temperature:      Round2(temperature),
				Precipitation:    Round2(precipitation),
				EventAttendance:  attendance,
			},
			DelayMinutes: Round2(delay),
		})
	}
	return records
}

// baseDelay applies the additive delay rules before noise.
func baseDelay(route string, hour, dayOfWeek int, temperature, precipitation float64, event string, attendance int) float64 {
	delay := 0.0

	if RouteBusyness(route) > 7 {
		delay += 5
	}

	// Rush hours 7-9 and 17-19, lighter midday load 10-16.
	switch {
	case (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19):
		delay += 15
	case hour >= 10 && hour <= 16:
		delay += 5
	}

	delay += precipitation * 0.5
	if temperature > 40 {
		delay += 5
	}
	if temperature < 0 {
		delay += 10
	}

	delay += float64(attendance) / 5000
	if event == "Protest" {
		delay += 10
	}

	if dayOfWeek == 4 { // Friday
		delay += 5
	} else if dayOfWeek >= 5 { // weekend
		delay -= 5
	}

	return delay
}

// weekdayMondayZero maps time.Weekday (Sunday=0) to the dataset convention
// Monday=0 .. Sunday=6.
func weekdayMondayZero(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
