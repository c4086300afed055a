package graphlayout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// attractionScale multiplies distance in the base attraction.
const attractionScale = 10.

// nodeForce is what the force model produces for a single node.
type nodeForce struct {
	// net scalar force: sum(repulsion) - sum(attraction) - sum(gravity)
	force float64

	// sum over all nodes j of the unit direction from j to i scaled by
	// repulsion - attraction - gravity for that pair
	pull r2.Vec
}

// attraction along an edge of weight w at distance dist, for a node of degree
// degI. The transforms apply in a fixed order: log compression, then weight
// exponent, then hub damping.
func (s *settings) attraction(dist, w, degI float64) float64 {
	a := attractionScale * dist * w
	if s.linLog {
		a = math.Log1p(a)
	}
	if s.exponent != 0 {
		a *= math.Pow(w, s.exponent)
	}
	if s.noHubs {
		a /= degI + 1
	}
	return a
}

func (s *settings) repulsion(dist, degI, degJ float64) float64 {
	return s.kRepulsive * (degI + 1) * degJ / dist
}

func (s *settings) gravity(dist, degJ float64) float64 {
	g := s.kGravity * (degJ + 1)
	if s.strongGravity {
		g *= dist
	}
	return g
}

// nodeForce evaluates every pair (i, j), j = 0..n-1 including i itself,
// against the frozen positions pos.
func (s *settings) nodeForce(adj *adjacency, pos []r2.Vec, i int) nodeForce {
	var out nodeForce
	degI := adj.deg[i]
	nbrs, weights := adj.row(i)

	// nbrs is sorted, so walk it alongside j
	k := 0
	for j := range pos {
		grad := r2.Sub(pos[i], pos[j])
		dist := clampDistance(r2.Norm(grad))

		var attr float64
		for k < len(nbrs) && nbrs[k] < j {
			k++
		}
		if k < len(nbrs) && nbrs[k] == j {
			attr = s.attraction(dist, weights[k], degI)
		}
		rep := s.repulsion(dist, degI, adj.deg[j])
		grav := s.gravity(dist, adj.deg[j])

		f := rep - attr - grav
		out.force += f
		out.pull = r2.Add(out.pull, r2.Scale(f/dist, grad))
	}
	return out
}
