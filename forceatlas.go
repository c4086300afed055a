package graphlayout

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Engine computes ForceAtlas2 layouts. An Engine holds no state between runs
// and is safe for concurrent use.
type Engine struct {
	// parameters used when a run does not override them
	Defaults Config

	// optional; nil disables logging
	Logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefaults replaces the engine defaults.
func WithDefaults(c Config) Option {
	return func(e *Engine) { e.Defaults = c }
}

// WithLogger sets the logger that receives per-iteration debug records.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.Logger = l }
}

// NewEngine returns an Engine using DefaultConfig unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{Defaults: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of a layout run.
type Result struct {
	// n x 2 coordinates, one row per node in input order. Empty for n = 0.
	Positions *mat.Dense

	// iterations executed
	Iterations int

	// true when the run stopped because every node settled
	Converged bool

	// step envelope used by each executed iteration
	StepMax []float64
}

// Nodes returns the number of laid out nodes.
func (r *Result) Nodes() int {
	n, _ := r.Positions.Dims()
	return n
}

// ForceAtlas2Layout lays out matrix with the default engine.
func ForceAtlas2Layout(matrix *mat.Dense, stop <-chan struct{}, conf *Config) (*mat.Dense, error) {
	res, err := NewEngine().Run(matrix, stop, conf)
	if err != nil {
		return nil, err
	}
	return res.Positions, nil
}

// Run lays out the graph with adjacency matrix m. An asymmetric m is treated
// as directed and replaced by its undirected union first. Fields set in conf
// override the engine defaults for this run only. Sending on or closing stop
// aborts the run with ErrSimulationStopped.
func (e *Engine) Run(m mat.Matrix, stop <-chan struct{}, conf *Config) (*Result, error) {
	// listen for the stop chan
	shouldStop := func() bool {
		select {
		case <-stop:
			return true
		default:
			return false
		}
	}

	adj, err := newAdjacency(m)
	if err != nil {
		return nil, err
	}
	s, err := resolve(e.Defaults, conf, adj.n)
	if err != nil {
		return nil, err
	}
	if adj.n == 0 {
		return &Result{Positions: &mat.Dense{}}, nil
	}

	pos, err := initialPositions(adj.n, &s)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	st := newState(pos, s.nIter)
	res := &Result{StepMax: make([]float64, 0, min(s.nIter, 1024))}
	for res.Iterations < s.nIter {
		if shouldStop() {
			return nil, ErrSimulationStopped
		}
		if err := st.sweep(adj, &s, shouldStop); err != nil {
			return nil, err
		}
		globalSwing, globalTraction, moving := st.reduce(adj, &s)

		res.StepMax = append(res.StepMax, st.stepMax)
		st.advance()
		res.Iterations++

		e.debug("iteration",
			"n", res.Iterations,
			"swing", globalSwing,
			"traction", globalTraction,
			"speed", st.globalSpeed,
			"step_max", st.stepMax)

		if !moving || settled(st.swing) {
			res.Converged = true
			break
		}
	}

	res.Positions = toDense(st.pos)
	if e.Logger != nil {
		e.Logger.Info("layout done",
			"nodes", adj.n,
			"edges", adj.edges(),
			"iterations", res.Iterations,
			"converged", res.Converged,
			"elapsed", time.Since(start).Round(time.Millisecond))
	}
	return res, nil
}

func (e *Engine) debug(msg string, keyvals ...interface{}) {
	if e.Logger != nil {
		e.Logger.Debug(msg, keyvals...)
	}
}

// initialPositions copies the configured starting positions, or draws each
// coordinate from a standard normal distribution.
func initialPositions(n int, s *settings) ([]r2.Vec, error) {
	pos := make([]r2.Vec, n)
	if s.initial != nil {
		r, c := s.initial.Dims()
		if r != n || c != 2 {
			return nil, &InvalidShapeError{Name: "initial positions", Rows: r, Cols: c, Want: shape(n, 2)}
		}
		for i := range pos {
			pos[i] = r2.Vec{X: s.initial.At(i, 0), Y: s.initial.At(i, 1)}
		}
		return pos, nil
	}

	rnd := rand.New(rand.NewSource(s.seed))
	for i := range pos {
		pos[i] = r2.Vec{X: rnd.NormFloat64(), Y: rnd.NormFloat64()}
	}
	return pos, nil
}

func toDense(pos []r2.Vec) *mat.Dense {
	out := mat.NewDense(len(pos), 2, nil)
	for i, p := range pos {
		out.Set(i, 0, p.X)
		out.Set(i, 1, p.Y)
	}
	return out
}
