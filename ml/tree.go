package ml

import "sort"

// Node is one node of a regression tree. Leaves carry the mean label of the
// samples that reached them; internal nodes route on x[Feature] <= Threshold.
type Node struct {
	Feature   int
	Threshold float64
	Left      int32
	Right     int32
	Value     float64
	Leaf      bool
}

// Tree is a flat-array regression tree, kept pointer-free so it gob-encodes
// compactly.
type Tree struct {
	Nodes []Node
}

func (t *Tree) Predict(x []float64) float64 {
	i := int32(0)
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type treeBuilder struct {
	x        [][]float64
	y        []float64
	maxDepth int
	// accumulated impurity decrease per feature, weighted by node size
	importances []float64
	nodes       []Node
}

// buildTree fits a variance-reduction CART tree on the rows named by idx.
// maxDepth <= 0 means unbounded.
func buildTree(x [][]float64, y []float64, idx []int, maxDepth int, importances []float64) Tree {
	b := &treeBuilder{x: x, y: y, maxDepth: maxDepth, importances: importances}
	b.grow(idx, 0)
	return Tree{Nodes: b.nodes}
}

func (b *treeBuilder) grow(idx []int, depth int) int32 {
	node := int32(len(b.nodes))
	b.nodes = append(b.nodes, Node{})

	mean, sse := meanSSE(b.y, idx)
	if sse <= 1e-12 || len(idx) < 2 || (b.maxDepth > 0 && depth >= b.maxDepth) {
		b.nodes[node] = Node{Leaf: true, Value: mean}
		return node
	}

	feature, threshold, gain := b.bestSplit(idx, sse)
	if gain <= 0 {
		b.nodes[node] = Node{Leaf: true, Value: mean}
		return node
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	if b.importances != nil {
		b.importances[feature] += gain
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[node] = Node{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return node
}

// bestSplit scans every feature for the threshold maximizing the drop in sum
// of squared errors. Candidate thresholds are midpoints between distinct
// adjacent sorted values.
func (b *treeBuilder) bestSplit(idx []int, parentSSE float64) (int, float64, float64) {
	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0
	nFeatures := len(b.x[idx[0]])
	n := len(idx)

	order := make([]int, n)
	for f := 0; f < nFeatures; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, c int) bool { return b.x[order[a]][f] < b.x[order[c]][f] })

		sumLeft, sqLeft := 0.0, 0.0
		sumTotal, sqTotal := 0.0, 0.0
		for _, i := range order {
			sumTotal += b.y[i]
			sqTotal += b.y[i] * b.y[i]
		}

		for k := 0; k < n-1; k++ {
			yi := b.y[order[k]]
			sumLeft += yi
			sqLeft += yi * yi

			v, next := b.x[order[k]][f], b.x[order[k+1]][f]
			if v == next {
				continue
			}

			nl, nr := float64(k+1), float64(n-k-1)
			sseLeft := sqLeft - sumLeft*sumLeft/nl
			sumRight, sqRight := sumTotal-sumLeft, sqTotal-sqLeft
			sseRight := sqRight - sumRight*sumRight/nr

			gain := parentSSE - sseLeft - sseRight
			if gain > bestGain {
				bestFeature = f
				bestThreshold = (v + next) / 2
				bestGain = gain
			}
		}
	}
	return bestFeature, bestThreshold, bestGain
}

func meanSSE(y []float64, idx []int) (float64, float64) {
	sum, sq := 0.0, 0.0
	for _, i := range idx {
		sum += y[i]
		sq += y[i] * y[i]
	}
	n := float64(len(idx))
	mean := sum / n
	return mean, sq - sum*sum/n
}
