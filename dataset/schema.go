package dataset

import (
	"hash/crc32"
	"math"

	"transit-delay-api/models"
)

// Column order of the persisted dataset. The label column is last and only
// present in training data.
var Columns = []string{
	"Route_ID",
	"Weather_Condition",
	"Event_Type",
	"Hour",
	"Day_OfWeek",
	"Temperature",
	"Precipitation",
	"Event_Attendance",
	"Delay_Minutes",
}

const LabelColumn = "Delay_Minutes"

// Categories accepted at inference time. The generator only samples a subset;
// anything outside these lists still encodes to a zero one-hot block rather
// than being rejected.
var (
	WeatherConditions = []string{"Sunny", "Clear", "Rainy", "Cloudy", "Snowy", "Foggy"}
	EventTypes        = []string{"None", "Normal", "Sports", "Concert", "Festival", "Protest", "Holiday", "Peak Hours"}
)

// Record is one labeled training sample.
type Record struct {
	models.TripFeatures
	DelayMinutes float64
}

// RouteBusyness buckets a route identifier into [0,9] using CRC-32 (IEEE)
// over its UTF-8 bytes. The checksum is fixed by the Go standard library, so
// the bucket is stable across processes and runs.
func RouteBusyness(routeID string) int {
	return int(crc32.ChecksumIEEE([]byte(routeID)) % 10)
}

// Round2 rounds to two decimal places, the precision used for delay values
// throughout the dataset and the API.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
