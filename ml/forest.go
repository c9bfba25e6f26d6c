package ml

import "math/rand"

// Forest is a bagged ensemble of regression trees. Prediction is the plain
// average over all trees, so the output always lies within the range of the
// training labels.
type Forest struct {
	Trees       []Tree
	Importances []float64
}

type ForestOptions struct {
	Trees    int
	MaxDepth int // <= 0 means unbounded
	Seed     int64
}

func DefaultForestOptions() ForestOptions {
	return ForestOptions{Trees: 100, Seed: 42}
}

// TrainForest fits opts.Trees trees, each on a bootstrap sample drawn from a
// single seeded stream. Feature importances are impurity decreases summed
// over all trees and normalized to 1.
func TrainForest(x [][]float64, y []float64, opts ForestOptions) *Forest {
	rng := rand.New(rand.NewSource(opts.Seed))
	n := len(x)
	nFeatures := len(x[0])

	importances := make([]float64, nFeatures)
	trees := make([]Tree, 0, opts.Trees)
	for t := 0; t < opts.Trees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		trees = append(trees, buildTree(x, y, idx, opts.MaxDepth, importances))
	}

	total := 0.0
	for _, v := range importances {
		total += v
	}
	if total > 0 {
		for i := range importances {
			importances[i] /= total
		}
	}

	return &Forest{Trees: trees, Importances: importances}
}

func (f *Forest) Predict(x []float64) float64 {
	sum := 0.0
	for i := range f.Trees {
		sum += f.Trees[i].Predict(x)
	}
	return sum / float64(len(f.Trees))
}
