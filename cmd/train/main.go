package main

import (
	"flag"
	"log"

	"transit-delay-api/config"
	"transit-delay-api/dataset"
	"transit-delay-api/ml"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dataPath := flag.String("data", cfg.Artifacts.DataPath, "labeled dataset CSV")
	modelPath := flag.String("out", cfg.Artifacts.ModelPath, "output model path")
	trees := flag.Int("trees", 100, "number of trees in the ensemble")
	maxDepth := flag.Int("max-depth", 0, "maximum tree depth, 0 for unbounded")
	seed := flag.Int64("seed", 42, "seed for the split and the bootstrap")
	flag.Parse()

	records, err := dataset.ReadCSV(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	log.Printf("loaded %d records from %s", len(records), *dataPath)

	opts := ml.TrainOptions{
		Forest:       ml.ForestOptions{Trees: *trees, MaxDepth: *maxDepth, Seed: *seed},
		TestFraction: 0.2,
		SplitSeed:    *seed,
	}

	log.Printf("training %d trees...", *trees)
	pipeline, m, err := ml.Train(records, opts)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	log.Printf("model trained on %d records, evaluated on %d: MAE=%.2f min, R2=%.2f", m.TrainSize, m.TestSize, m.MAE, m.R2)

	if err := pipeline.Save(*modelPath); err != nil {
		log.Fatalf("Failed to save model: %v", err)
	}
	log.Printf("model saved to %s", *modelPath)
}
