package graphlayout

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

// state is everything that lives across iterations of one run.
type state struct {
	pos []r2.Vec

	// force applied to each node in the previous iteration
	force []float64

	// per node outputs of the current sweep
	swing    []float64
	traction []float64
	delta    []r2.Vec

	globalSpeed float64
	stepMax     float64
	// amount stepMax shrinks by after every iteration
	step float64
}

func newState(pos []r2.Vec, nIter int) *state {
	n := len(pos)
	stepMax := spread(pos)
	return &state{
		pos:         pos,
		force:       make([]float64, n),
		swing:       make([]float64, n),
		traction:    make([]float64, n),
		delta:       make([]r2.Vec, n),
		globalSpeed: 1,
		stepMax:     stepMax,
		step:        stepMax / float64(nIter+1),
	}
}

// sweep runs the force model, the stability tracker and the per node speed
// for every node. Workers own contiguous index ranges and only write their own
// slots; positions are not touched until the sweep is done.
func (st *state) sweep(adj *adjacency, s *settings, shouldStop func() bool) error {
	n := len(st.pos)
	chunk := (n + s.workers - 1) / s.workers

	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%stopCheckInterval == 0 && shouldStop() {
					return ErrSimulationStopped
				}
				st.update(adj, s, i)
			}
			return nil
		})
	}
	return g.Wait()
}

// stopCheckInterval is how many nodes a worker handles between polls of the
// stop channel.
const stopCheckInterval = 256

func (st *state) update(adj *adjacency, s *settings, i int) {
	nf := s.nodeForce(adj, st.pos, i)
	prev := st.force[i]

	sw := swing(nf.force, prev)
	st.swing[i] = sw
	st.traction[i] = traction(nf.force, prev)
	st.force[i] = nf.force
	st.delta[i] = r2.Scale(nodeSpeed(s.kSpeed, st.globalSpeed, sw), nf.pull)
}

// reduce folds the per node swing and traction into the global speed, in
// index order. It reports false when there was no swing left at all.
func (st *state) reduce(adj *adjacency, s *settings) (globalSwing, globalTraction float64, moving bool) {
	for i := range st.swing {
		w := adj.deg[i] + 1
		globalSwing += w * st.swing[i]
		globalTraction += w * st.traction[i]
	}
	st.globalSpeed, moving = nextGlobalSpeed(s.tolerance, globalTraction, globalSwing, st.globalSpeed)
	return globalSwing, globalTraction, moving
}

// advance moves every node and shrinks the step envelope.
func (st *state) advance() {
	integrate(st.pos, st.delta, st.stepMax)
	st.stepMax -= st.step
}
