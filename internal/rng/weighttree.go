package rng

// weightTree is a Fenwick tree over entrant weights. It finds the entrant owning
// a point on the cumulative weight line and removes an entrant's weight, both in O(log n).
type weightTree struct {
	tree    []float64 // 1-based partial sums
	weights []float64 // live weight per entrant, 0 once drawn
	total   float64
	top     int // highest power of two <= len(weights)
}

func newWeightTree(weights []float64) *weightTree {
	n := len(weights)
	t := &weightTree{
		tree:    make([]float64, n+1),
		weights: make([]float64, n),
	}
	copy(t.weights, weights)
	for i, w := range weights {
		t.total += w
		j := i + 1
		t.tree[j] += w
		if parent := j + (j & -j); parent <= n {
			t.tree[parent] += t.tree[j]
		}
	}
	for t.top = 1; t.top*2 <= n; t.top *= 2 {
	}
	return t
}

// find returns the smallest index whose cumulative weight exceeds r.
func (t *weightTree) find(r float64) int {
	n := len(t.weights)
	pos := 0
	for step := t.top; step > 0; step >>= 1 {
		next := pos + step
		if next <= n && t.tree[next] <= r {
			pos = next
			r -= t.tree[next]
		}
	}
	if pos >= n || t.weights[pos] == 0 {
		// rounding pushed r onto a drawn entrant or past the end
		return t.nearestLive(pos)
	}
	return pos
}

// nearestLive looks down from pos, then up, for an entrant that still has weight.
func (t *weightTree) nearestLive(pos int) int {
	for i := min(pos, len(t.weights)-1); i >= 0; i-- {
		if t.weights[i] > 0 {
			return i
		}
	}
	for i := pos + 1; i < len(t.weights); i++ {
		if t.weights[i] > 0 {
			return i
		}
	}
	return -1
}

// remove takes entrant i's whole weight out of the tree.
func (t *weightTree) remove(i int) {
	w := t.weights[i]
	if w == 0 {
		return
	}
	t.weights[i] = 0
	t.total -= w
	for j := i + 1; j < len(t.tree); j += j & -j {
		t.tree[j] -= w
	}
}
