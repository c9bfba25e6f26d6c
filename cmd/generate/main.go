package main

import (
	"flag"
	"log"

	"transit-delay-api/config"
	"transit-delay-api/dataset"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	samples := flag.Int("n", 5000, "number of samples to generate")
	seed := flag.Int64("seed", 42, "random seed")
	routesPath := flag.String("gtfs-routes", cfg.Artifacts.RoutesPath, "GTFS routes.txt to draw route IDs from")
	out := flag.String("out", cfg.Artifacts.DataPath, "output CSV path")
	flag.Parse()

	routes := dataset.LoadRoutes(*routesPath)
	records := dataset.Generate(routes, *samples, *seed)

	if err := dataset.WriteCSV(*out, records); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}
	log.Printf("generated %d records over %d routes into %s (seed=%d)", len(records), len(routes), *out, *seed)
}
