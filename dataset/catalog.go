package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
)

// FallbackRoutes is used whenever the GTFS routes file cannot be read. The
// degraded catalog is intentional, not an error state.
var FallbackRoutes = []string{"R-101", "R-102", "R-103", "R-201", "R-202"}

// LoadRoutes reads the route_id column from a GTFS routes.txt file. Column
// order is irrelevant; the header row decides. On any failure it logs and
// falls back to FallbackRoutes.
func LoadRoutes(path string) []string {
	routes, err := readRouteIDs(path)
	if err != nil {
		log.Printf("loading GTFS routes from %s failed: %v, falling back to %d placeholder routes", path, err, len(FallbackRoutes))
		return FallbackRoutes
	}
	log.Printf("loaded %d routes from %s", len(routes), path)
	return routes
}

func readRouteIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idCol := -1
	for i, name := range header {
		if name == "route_id" {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("no route_id column in %v", header)
	}

	seen := make(map[string]bool)
	var routes []string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		id := row[idCol]
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		routes = append(routes, id)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("no routes found")
	}
	return routes, nil
}
