package graphlayout

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

func distance(m *mat.Dense, a, b int) float64 {
	return euclidean(m.At(a, 0)-m.At(b, 0), m.At(a, 1)-m.At(b, 1))
}

func euclidean(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

func TestForceAtlas2(t *testing.T) {
	stop := make(chan struct{})

	// test non-square input
	{
		_, err := ForceAtlas2Layout(mat.NewDense(5, 6, nil), stop, nil)
		require.ErrorIs(t, err, ErrInvalidShape)

		var shapeErr *InvalidShapeError
		require.True(t, errors.As(err, &shapeErr))
		assert.Equal(t, 5, shapeErr.Rows)
		assert.Equal(t, 6, shapeErr.Cols)
	}

	// test triangle
	{
		//  A --- B
		//   \   /
		//     C
		m := mat.NewDense(3, 3, []float64{0, 1, 1, 1, 0, 1, 1, 1, 0})
		initial := mat.NewDense(3, 2, []float64{-5, 0, 5, 0, 0, 8})

		res, err := NewEngine().Run(m, stop, &Config{NIter: Int(50), Initial: initial})
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Iterations, 50)

		for _, pair := range [][2]int{{0, 1}, {0, 2}, {1, 2}} {
			before := distance(initial, pair[0], pair[1])
			after := distance(res.Positions, pair[0], pair[1])
			assert.Lessf(t, after, before, "nodes %v should be closer", pair)
		}
	}

	// test single edge
	{
		m := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
		initial := mat.NewDense(2, 2, []float64{-1, 0, 1, 0})

		res, err := NewEngine().Run(m, stop, &Config{Initial: initial})
		require.NoError(t, err)
		assert.True(t, res.Converged)
		assert.Less(t, res.Iterations, 50)
		assert.Less(t, distance(res.Positions, 0, 1), distance(initial, 0, 1))
		for i := 0; i < 2; i++ {
			assert.Less(t, euclidean(res.Positions.At(i, 0), res.Positions.At(i, 1)), 1.)
		}
	}

	// test stopping
	{
		m := mat.NewDense(5, 5, []float64{0, 1, 1, 1, 1, 1, 0, 1, 1, 0, 1, 1, 0, 0, 1, 1, 1, 0, 0, 1, 1, 0, 1, 1, 0})

		// run the layout in the background
		group, _ := errgroup.WithContext(context.Background())
		group.Go(func() error {
			// try performing a billion iterations
			_, err := ForceAtlas2Layout(m, stop, &Config{NIter: Int(1e9)})
			return err
		})
		// let run for 10ms, then stop it
		time.Sleep(time.Millisecond * 10)
		close(stop)
		err := group.Wait()
		assert.Equal(t, ErrSimulationStopped, err)
	}
}

func TestEmptyGraph(t *testing.T) {
	res, err := NewEngine().Run(&mat.Dense{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Nodes())
	assert.Equal(t, 0, res.Iterations)
	assert.Empty(t, res.StepMax)
}

func TestSingleNode(t *testing.T) {
	m := mat.NewDense(1, 1, nil)
	initial := mat.NewDense(1, 2, []float64{0.3, -0.2})

	res, err := NewEngine().Run(m, nil, &Config{Initial: initial})
	require.NoError(t, err)

	// the self pair has no direction, so the node never moves and its force
	// is constant from the second iteration on
	r, c := res.Positions.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 0.3, res.Positions.At(0, 0))
	assert.Equal(t, -0.2, res.Positions.At(0, 1))
	assert.True(t, res.Converged)
	assert.Equal(t, 2, res.Iterations)
}

func TestDeterministicSeed(t *testing.T) {
	m := mat.NewDense(5, 5, []float64{0, 1, 1, 1, 1, 1, 0, 1, 1, 0, 1, 1, 0, 0, 1, 1, 1, 0, 0, 1, 1, 0, 1, 1, 0})

	first, err := NewEngine().Run(m, nil, &Config{Seed: Int64(42)})
	require.NoError(t, err)
	second, err := NewEngine().Run(m, nil, &Config{Seed: Int64(42)})
	require.NoError(t, err)
	assert.True(t, mat.Equal(first.Positions, second.Positions))
	assert.Equal(t, first.Iterations, second.Iterations)

	other, err := NewEngine().Run(m, nil, &Config{Seed: Int64(43)})
	require.NoError(t, err)
	assert.False(t, mat.Equal(first.Positions, other.Positions))
}

func TestWorkerCountDoesNotChangeLayout(t *testing.T) {
	n := 40
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		// a ring with a few chords
		j := (i + 1) % n
		m.Set(i, j, 1)
		m.Set(j, i, 1)
		if i%7 == 0 {
			k := (i + n/2) % n
			m.Set(i, k, 2)
			m.Set(k, i, 2)
		}
	}

	base, err := NewEngine().Run(m, nil, &Config{Seed: Int64(7), Workers: Int(1)})
	require.NoError(t, err)
	for _, workers := range []int{2, 3, 8, 64} {
		res, err := NewEngine().Run(m, nil, &Config{Seed: Int64(7), Workers: Int(workers)})
		require.NoError(t, err)
		assert.Truef(t, mat.Equal(base.Positions, res.Positions), "workers=%d", workers)
		assert.Equal(t, base.Iterations, res.Iterations)
	}
}

func TestSymmetrizedInputGivesSameLayout(t *testing.T) {
	directed := mat.NewDense(4, 4, []float64{
		0, 2, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
		1, 0, 1, 0,
	})
	require.False(t, IsSymmetric(directed))

	undirected := Symmetrize(directed)
	require.True(t, IsSymmetric(undirected))

	conf := &Config{Seed: Int64(3)}
	a, err := NewEngine().Run(directed, nil, conf)
	require.NoError(t, err)
	b, err := NewEngine().Run(undirected, nil, conf)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a.Positions, b.Positions))
}

func TestStepEnvelope(t *testing.T) {
	m := mat.NewDense(6, 6, nil)
	for i := 0; i < 5; i++ {
		m.Set(i, i+1, 1)
		m.Set(i+1, i, 1)
	}
	nIter := 30
	initial := mat.NewDense(6, 2, []float64{0, 0, 1, 2, -3, 1, 4, -1, 2, 2, -2, -2})

	res, err := NewEngine().Run(m, nil, &Config{NIter: Int(nIter), Initial: initial})
	require.NoError(t, err)
	require.LessOrEqual(t, res.Iterations, nIter)
	require.Len(t, res.StepMax, res.Iterations)

	// spread of the initial positions along x
	assert.Equal(t, 7., res.StepMax[0])
	for i := 1; i < len(res.StepMax); i++ {
		assert.LessOrEqual(t, res.StepMax[i], res.StepMax[i-1])
		assert.Greater(t, res.StepMax[i], 0.)
	}

	// no axis of any node can move by more than the envelope per iteration
	var budget float64
	for _, s := range res.StepMax {
		budget += s
	}
	for i := 0; i < 6; i++ {
		assert.LessOrEqual(t, math.Abs(res.Positions.At(i, 0)-initial.At(i, 0)), budget+1e-9)
		assert.LessOrEqual(t, math.Abs(res.Positions.At(i, 1)-initial.At(i, 1)), budget+1e-9)
	}
}

func TestTwoComponents(t *testing.T) {
	// 0-1 and 2-3
	m := mat.NewDense(4, 4, []float64{
		0, 1, 0, 0,
		1, 0, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	})
	initial := mat.NewDense(4, 2, []float64{-3, 0, -2, 0, 2, 0, 3, 0})

	res, err := NewEngine().Run(m, nil, &Config{Initial: initial})
	require.NoError(t, err)
	r, c := res.Positions.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 2, c)
	for i := 0; i < 4; i++ {
		x, y := res.Positions.At(i, 0), res.Positions.At(i, 1)
		assert.False(t, math.IsNaN(x) || math.IsInf(x, 0))
		assert.False(t, math.IsNaN(y) || math.IsInf(y, 0))
	}
	// the mirrored start keeps the two components mirrored
	assert.InDelta(t, distance(res.Positions, 0, 1), distance(res.Positions, 2, 3), 1e-2)
	assert.Less(t, distance(res.Positions, 0, 1), distance(res.Positions, 0, 3))
}

func TestCoincidentNodes(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{0, 1, 0, 1, 0, 1, 0, 1, 0})
	initial := mat.NewDense(3, 2, []float64{1, 1, 1, 1, 1, 1})

	res, err := NewEngine().Run(m, nil, &Config{Initial: initial, NIter: Int(10)})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.False(t, math.IsNaN(res.Positions.At(i, 0)))
		assert.False(t, math.IsNaN(res.Positions.At(i, 1)))
	}
}

func TestInvalidInitialPositions(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{0, 1, 0, 1, 0, 1, 0, 1, 0})

	_, err := NewEngine().Run(m, nil, &Config{Initial: mat.NewDense(2, 2, nil)})
	require.ErrorIs(t, err, ErrInvalidShape)
	assert.Contains(t, err.Error(), "want 3x2")
}

func TestInvalidConfig(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{0, 1, 1, 0})

	_, err := NewEngine().Run(m, nil, &Config{NIter: Int(-1)})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewEngine().Run(m, nil, &Config{KGravity: Float(math.NaN())})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestZeroIterations(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
	initial := mat.NewDense(2, 2, []float64{-1, 0, 1, 0})

	res, err := NewEngine().Run(m, nil, &Config{NIter: Int(0), Initial: initial})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Iterations)
	assert.True(t, mat.Equal(initial, res.Positions))
}

func TestEngineDefaults(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{0, 1, 1, 1, 0, 1, 1, 1, 0})

	e := NewEngine(WithDefaults(Config{NIter: Int(3), Seed: Int64(1)}))
	res, err := e.Run(m, nil, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Iterations, 3)

	// a per call override wins over the stored default
	res, err = e.Run(m, nil, &Config{NIter: Int(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
}
