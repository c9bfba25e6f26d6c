package ml

import (
	"encoding/gob"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"

	"transit-delay-api/dataset"
	"transit-delay-api/models"
)

// Pipeline couples the fitted encoder with the forest. It is the opaque
// artifact the trainer persists and the API loads at startup; once loaded it
// is read-only and safe to share across requests.
type Pipeline struct {
	Encoder   *Encoder
	Forest    *Forest
	Version   string
	TrainedAt time.Time
}

type TrainOptions struct {
	Forest       ForestOptions
	TestFraction float64
	SplitSeed    int64
}

func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Forest:       DefaultForestOptions(),
		TestFraction: 0.2,
		SplitSeed:    42,
	}
}

// Metrics reports held-out quality of a trained pipeline.
type Metrics struct {
	MAE       float64
	R2        float64
	TrainSize int
	TestSize  int
}

// Train fits the one-hot + forest pipeline on a seeded 80/20 split of the
// labeled records and evaluates on the held-out part.
func Train(records []dataset.Record, opts TrainOptions) (*Pipeline, Metrics, error) {
	if len(records) < 5 {
		return nil, Metrics{}, fmt.Errorf("need at least 5 records to train, got %d", len(records))
	}

	enc := FitEncoder(records)

	x := make([][]float64, len(records))
	y := make([]float64, len(records))
	for i, r := range records {
		x[i] = enc.Transform(r.TripFeatures)
		y[i] = r.DelayMinutes
	}

	perm := rand.New(rand.NewSource(opts.SplitSeed)).Perm(len(records))
	testN := int(math.Round(float64(len(records)) * opts.TestFraction))
	testIdx, trainIdx := perm[:testN], perm[testN:]

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]float64, len(trainIdx))
	for i, j := range trainIdx {
		trainX[i] = x[j]
		trainY[i] = y[j]
	}

	forest := TrainForest(trainX, trainY, opts.Forest)
	p := &Pipeline{
		Encoder:   enc,
		Forest:    forest,
		Version:   "rf-v1",
		TrainedAt: time.Now().UTC(),
	}

	m := Metrics{TrainSize: len(trainIdx), TestSize: len(testIdx)}
	if testN > 0 {
		m.MAE, m.R2 = evaluate(forest, x, y, testIdx)
	}
	return p, m, nil
}

func evaluate(forest *Forest, x [][]float64, y []float64, testIdx []int) (mae, r2 float64) {
	mean := 0.0
	for _, j := range testIdx {
		mean += y[j]
	}
	mean /= float64(len(testIdx))

	var absSum, ssRes, ssTot float64
	for _, j := range testIdx {
		pred := forest.Predict(x[j])
		absSum += math.Abs(pred - y[j])
		ssRes += (pred - y[j]) * (pred - y[j])
		ssTot += (y[j] - mean) * (y[j] - mean)
	}
	mae = absSum / float64(len(testIdx))
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	return mae, r2
}

// Predict returns the ensemble estimate for one feature record. Labels are
// clamped non-negative at generation time and the forest averages them, so
// the output is non-negative without further clamping.
func (p *Pipeline) Predict(f models.TripFeatures) float64 {
	return p.Forest.Predict(p.Encoder.Transform(f))
}

// FeatureImportances pairs the expanded feature names with the forest's
// normalized importance scores, descending.
func (p *Pipeline) FeatureImportances() []models.FeatureImportance {
	names := p.Encoder.FeatureNames()
	out := make([]models.FeatureImportance, len(names))
	for i, name := range names {
		out[i] = models.FeatureImportance{Feature: name, Importance: p.Forest.Importances[i]}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Importance > out[b].Importance })
	return out
}

// Save writes the pipeline as a gob artifact.
func (p *Pipeline) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating model file %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	return nil
}

// Load reads a pipeline artifact written by Save.
func Load(path string) (*Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model %s not readable (run the trainer first): %w", path, err)
	}
	defer f.Close()
	var p Pipeline
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding model %s: %w", path, err)
	}
	return &p, nil
}
