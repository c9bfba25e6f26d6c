package ml

import (
	"math"
	"testing"
)

func allIdx(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func TestTreeConstantLabels(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{7, 7, 7, 7}

	tree := buildTree(x, y, allIdx(4), 0, nil)
	if len(tree.Nodes) != 1 {
		t.Errorf("constant labels should give a single leaf, got %d nodes", len(tree.Nodes))
	}
	if got := tree.Predict([]float64{2.5}); got != 7 {
		t.Errorf("Predict() = %v, want 7", got)
	}
}

func TestTreeLearnsThresholdSplit(t *testing.T) {
	x := [][]float64{{0.1}, {0.2}, {0.3}, {0.7}, {0.8}, {0.9}}
	y := []float64{0, 0, 0, 10, 10, 10}

	tree := buildTree(x, y, allIdx(6), 0, nil)
	if got := tree.Predict([]float64{0.0}); got != 0 {
		t.Errorf("Predict(0.0) = %v, want 0", got)
	}
	if got := tree.Predict([]float64{1.0}); got != 10 {
		t.Errorf("Predict(1.0) = %v, want 10", got)
	}
	// The split should sit between the two clusters.
	if got := tree.Predict([]float64{0.4}); got != 0 {
		t.Errorf("Predict(0.4) = %v, want 0", got)
	}
}

func TestTreeMaxDepth(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}}
	y := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	tree := buildTree(x, y, allIdx(8), 1, nil)
	// Depth 1 allows a single split: root plus two leaves.
	if len(tree.Nodes) != 3 {
		t.Errorf("depth-1 tree has %d nodes, want 3", len(tree.Nodes))
	}
}

func TestTreeImportancesAccumulate(t *testing.T) {
	// Feature 1 is pure noise; feature 0 fully explains y.
	x := [][]float64{{0, 5}, {0, 3}, {1, 5}, {1, 3}}
	y := []float64{0, 0, 10, 10}

	importances := make([]float64, 2)
	buildTree(x, y, allIdx(4), 0, importances)

	if importances[0] <= 0 {
		t.Errorf("informative feature importance = %v, want > 0", importances[0])
	}
	if importances[1] != 0 {
		t.Errorf("noise feature importance = %v, want 0", importances[1])
	}
}

func TestForestPredictionWithinLabelRange(t *testing.T) {
	x := make([][]float64, 50)
	y := make([]float64, 50)
	for i := range x {
		x[i] = []float64{float64(i % 10), float64(i % 3)}
		y[i] = float64(i%10) * 2
	}

	forest := TrainForest(x, y, ForestOptions{Trees: 20, Seed: 1})
	for _, probe := range [][]float64{{0, 0}, {5, 1}, {9, 2}, {100, -1}} {
		got := forest.Predict(probe)
		if got < 0 || got > 18 {
			t.Errorf("Predict(%v) = %v, outside label range [0,18]", probe, got)
		}
	}
}

func TestForestImportancesNormalized(t *testing.T) {
	x := [][]float64{{0, 1}, {0, 2}, {1, 1}, {1, 2}, {0, 3}, {1, 3}}
	y := []float64{0, 0, 10, 10, 0, 10}

	forest := TrainForest(x, y, ForestOptions{Trees: 10, Seed: 1})
	sum := 0.0
	for _, v := range forest.Importances {
		if v < 0 {
			t.Errorf("negative importance %v", v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("importances sum to %v, want 1", sum)
	}
}
