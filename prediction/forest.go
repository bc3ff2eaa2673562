package prediction

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sort"

	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
)

const (
	DefaultTrees = 100
	DefaultSeed  = 42
)

// Forest is a random forest of CART classification trees.
type Forest struct {
	classes  []int
	features int
	trees    []*treeNode
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	// class probabilities, set on leaves only
	dist []float64
}

func (n *treeNode) leaf() bool {
	return n.dist != nil
}

type forestOptions struct {
	trees int
	seed  uint64
}

type ForestOption func(*forestOptions)

func WithForestTrees(n int) ForestOption {
	return func(o *forestOptions) { o.trees = n }
}

func WithForestSeed(seed uint64) ForestOption {
	return func(o *forestOptions) { o.seed = seed }
}

// FitForest trains a forest on rows of x with labels y. Each tree sees a bootstrap
// sample and considers sqrt(features) random features per split. The same seed
// and data always produce the same forest.
func FitForest(x [][]float64, y []int, opts ...ForestOption) (*Forest, error) {
	o := forestOptions{trees: DefaultTrees, seed: DefaultSeed}
	for _, opt := range opts {
		opt(&o)
	}
	if o.trees <= 0 {
		return nil, fmt.Errorf("forest needs at least one tree, got %d", o.trees)
	}
	if len(x) == 0 {
		return nil, apperrors.ErrNoTrainingData
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%d samples but %d labels", len(x), len(y))
	}

	features := len(x[0])
	if features == 0 {
		return nil, fmt.Errorf("samples have no features")
	}
	for i, row := range x {
		if len(row) != features {
			return nil, fmt.Errorf("sample %d has %d features, want %d", i, len(row), features)
		}
	}

	classes := slices.Clone(y)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	labels := make([]int, len(y))
	for i, label := range y {
		labels[i], _ = slices.BinarySearch(classes, label)
	}

	b := &treeBuilder{
		x:          x,
		labels:     labels,
		classes:    len(classes),
		features:   features,
		candidates: max(1, int(math.Sqrt(float64(features)))),
		rng:        rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)),
	}

	f := &Forest{classes: classes, features: features, trees: make([]*treeNode, o.trees)}
	for t := range f.trees {
		sample := make([]int, len(x))
		for i := range sample {
			sample[i] = b.rng.IntN(len(x))
		}
		f.trees[t] = b.build(sample)
	}
	return f, nil
}

// Predict returns the class with the highest mean probability across trees.
// Ties go to the smaller label.
func (f *Forest) Predict(sample []float64) (int, error) {
	if f == nil || len(f.trees) == 0 {
		return 0, apperrors.ErrModelNotFitted
	}
	if len(sample) != f.features {
		return 0, fmt.Errorf("sample has %d features, want %d", len(sample), f.features)
	}

	votes := make([]float64, len(f.classes))
	for _, tree := range f.trees {
		n := tree
		for !n.leaf() {
			if sample[n.feature] <= n.threshold {
				n = n.left
			} else {
				n = n.right
			}
		}
		for c, p := range n.dist {
			votes[c] += p
		}
	}

	best := 0
	for c := 1; c < len(votes); c++ {
		if votes[c] > votes[best] {
			best = c
		}
	}
	return f.classes[best], nil
}

func (f *Forest) Classes() []int {
	return slices.Clone(f.classes)
}

func (f *Forest) Trees() int {
	return len(f.trees)
}

type treeBuilder struct {
	x          [][]float64
	labels     []int
	classes    int
	features   int
	candidates int
	rng        *rand.Rand
}

func (b *treeBuilder) build(sample []int) *treeNode {
	counts := b.count(sample)
	if gini(counts, len(sample)) == 0 || len(sample) < 2 {
		return b.makeLeaf(counts, len(sample))
	}

	feature, threshold, ok := b.bestSplit(sample, counts)
	if !ok {
		return b.makeLeaf(counts, len(sample))
	}

	var left, right []int
	for _, i := range sample {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.makeLeaf(counts, len(sample))
	}
	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      b.build(left),
		right:     b.build(right),
	}
}

// bestSplit scores b.candidates random features that vary within sample. When
// none of them yields a partition it keeps drawing from the remaining features.
// An impure node splits even if no partition lowers its impurity.
func (b *treeBuilder) bestSplit(sample []int, counts []int) (int, float64, bool) {
	bestScore := math.Inf(1)
	bestFeature, bestThreshold, found := 0, 0.0, false

	order := slices.Clone(sample)
	visited := 0
	for _, feature := range b.rng.Perm(b.features) {
		if visited >= b.candidates && found {
			break
		}

		sort.SliceStable(order, func(i, j int) bool {
			return b.x[order[i]][feature] < b.x[order[j]][feature]
		})
		if b.x[order[0]][feature] == b.x[order[len(order)-1]][feature] {
			// constant here, does not count towards the candidates
			continue
		}
		visited++

		leftCounts := make([]int, b.classes)
		rightCounts := slices.Clone(counts)
		for pos := 0; pos < len(order)-1; pos++ {
			label := b.labels[order[pos]]
			leftCounts[label]++
			rightCounts[label]--

			cur, next := b.x[order[pos]][feature], b.x[order[pos+1]][feature]
			if cur == next {
				continue
			}
			nl, nr := pos+1, len(order)-pos-1
			score := (float64(nl)*gini(leftCounts, nl) + float64(nr)*gini(rightCounts, nr)) / float64(len(order))
			if score < bestScore-1e-12 {
				bestScore = score
				bestFeature = feature
				bestThreshold = cur + (next-cur)/2
				if bestThreshold >= next {
					// adjacent floats
					bestThreshold = cur
				}
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func (b *treeBuilder) count(sample []int) []int {
	counts := make([]int, b.classes)
	for _, i := range sample {
		counts[b.labels[i]]++
	}
	return counts
}

func (b *treeBuilder) makeLeaf(counts []int, n int) *treeNode {
	dist := make([]float64, len(counts))
	if n > 0 {
		for c, k := range counts {
			dist[c] = float64(k) / float64(n)
		}
	}
	return &treeNode{dist: dist}
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	impurity := 1.0
	for _, k := range counts {
		p := float64(k) / float64(n)
		impurity -= p * p
	}
	return impurity
}
