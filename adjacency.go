package graphlayout

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/mat"
)

// adjacency is the compressed-row form of a symmetric weighted graph.
// Row i holds the neighbors of i in ascending order in
// indices[indptr[i]:indptr[i+1]] with matching weights.
type adjacency struct {
	n       int
	indptr  []int
	indices []int
	weights []float64

	// weighted degree plus one, so isolated nodes still carry mass
	deg []float64
}

// newAdjacency validates m, symmetrizes it when needed and compresses it.
func newAdjacency(m mat.Matrix) (*adjacency, error) {
	r, c := m.Dims()
	if r != c {
		return nil, &InvalidShapeError{Name: "adjacency", Rows: r, Cols: c, Want: "square"}
	}
	if r > 0 && !IsSymmetric(m) {
		m = Symmetrize(m)
	}

	a := &adjacency{
		n:      r,
		indptr: make([]int, r+1),
		deg:    make([]float64, r),
	}
	for i := 0; i < r; i++ {
		deg := 1.
		for j := 0; j < r; j++ {
			w := m.At(i, j)
			// no edge, skipping
			if w == 0 {
				continue
			}
			a.indices = append(a.indices, j)
			a.weights = append(a.weights, w)
			deg += w
		}
		a.indptr[i+1] = len(a.indices)
		a.deg[i] = deg
	}
	return a, nil
}

// row returns the neighbors of i and the weights of the edges to them.
func (a *adjacency) row(i int) ([]int, []float64) {
	lo, hi := a.indptr[i], a.indptr[i+1]
	return a.indices[lo:hi], a.weights[lo:hi]
}

// edges counts undirected edges, self loops included once.
func (a *adjacency) edges() int {
	var m int
	for i := 0; i < a.n; i++ {
		nbrs, _ := a.row(i)
		for _, j := range nbrs {
			if j >= i {
				m++
			}
		}
	}
	return m
}

// IsSymmetric reports whether m is square and equal to its transpose.
func IsSymmetric(m mat.Matrix) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := 0; j < i; j++ {
			if m.At(i, j) != m.At(j, i) {
				return false
			}
		}
	}
	return true
}

// Symmetrize returns the undirected union A + Aᵀ of a square matrix. An
// edge present in both directions ends up with the sum of both weights.
func Symmetrize(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	out := mat.DenseCopyOf(m)
	out.Add(out, m.T())
	return out
}

// FromGraph builds a dense adjacency matrix from a gonum graph. Rows follow
// the node IDs in ascending order, which are returned alongside. Weighted
// graphs keep their edge weights, all other edges weigh 1.
func FromGraph(g graph.Graph) (*mat.Dense, []int64) {
	nodes := graph.NodesOf(g.Nodes())
	if len(nodes) == 0 {
		return &mat.Dense{}, nil
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })

	ids := make([]int64, len(nodes))
	index := make(map[int64]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
		index[n.ID()] = i
	}

	wg, weighted := g.(graph.Weighted)
	out := mat.NewDense(len(nodes), len(nodes), nil)
	for i, u := range nodes {
		to := g.From(u.ID())
		for to.Next() {
			v := to.Node()
			w := 1.
			if weighted {
				if ew, ok := wg.Weight(u.ID(), v.ID()); ok {
					w = ew
				}
			}
			out.Set(i, index[v.ID()], w)
		}
	}
	return out, ids
}
