package dataset

import "sort"

// Routes returns the sorted distinct route identifiers in the dataset.
func Routes(records []Record) []string {
	seen := make(map[string]bool)
	routes := []string{}
	for _, r := range records {
		if !seen[r.RouteID] {
			seen[r.RouteID] = true
			routes = append(routes, r.RouteID)
		}
	}
	sort.Strings(routes)
	return routes
}

// RouteRisks groups the dataset by route and returns the mean historical
// delay per route, rounded to two decimals.
func RouteRisks(records []Record) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		sums[r.RouteID] += r.DelayMinutes
		counts[r.RouteID]++
	}
	risks := make(map[string]float64, len(sums))
	for route, sum := range sums {
		risks[route] = Round2(sum / float64(counts[route]))
	}
	return risks
}
