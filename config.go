package graphlayout

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Config holds the ForceAtlas2 parameters. Every field is optional: a nil
// field falls back to the engine defaults, see DefaultConfig.
type Config struct {
	// number of simulation iterations to run
	NIter *int

	// use log(1+a) for the attractive force
	LinLog *bool

	// gravity scaling constant
	KGravity *float64

	// gravity grows with the distance to the pulled node
	StrongGravity *bool

	// repulsive force scaling constant
	KRepulsive *float64

	// when non-zero, edge weights are raised to this power in the attraction
	Exponent *float64

	// divide attraction by the degree of the node, so hubs pull less
	NoHubs *bool

	// sensitivity of the global speed to the traction/swing ratio. When unset
	// it is chosen from the size of the graph.
	Tolerance *float64

	// base multiplier of the per-node step
	KSpeed *float64

	// seed for the initial positions; time based when unset
	Seed *int64

	// goroutines used for each force sweep; GOMAXPROCS when unset or zero
	Workers *int

	// n x 2 starting positions, replacing the random draw
	Initial *mat.Dense
}

// DefaultConfig returns the engine defaults. Tolerance and Seed are left unset
// on purpose: both are resolved per run.
func DefaultConfig() Config {
	return Config{
		NIter:         Int(50),
		LinLog:        Bool(false),
		KGravity:      Float(0.01),
		StrongGravity: Bool(false),
		KRepulsive:    Float(0.01),
		Exponent:      Float(0),
		NoHubs:        Bool(false),
		KSpeed:        Float(0.01),
		Workers:       Int(0),
	}
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Merge returns a copy of c with every field set in over applied on top.
func (c Config) Merge(over *Config) Config {
	if over == nil {
		return c
	}
	if over.NIter != nil {
		c.NIter = over.NIter
	}
	if over.LinLog != nil {
		c.LinLog = over.LinLog
	}
	if over.KGravity != nil {
		c.KGravity = over.KGravity
	}
	if over.StrongGravity != nil {
		c.StrongGravity = over.StrongGravity
	}
	if over.KRepulsive != nil {
		c.KRepulsive = over.KRepulsive
	}
	if over.Exponent != nil {
		c.Exponent = over.Exponent
	}
	if over.NoHubs != nil {
		c.NoHubs = over.NoHubs
	}
	if over.Tolerance != nil {
		c.Tolerance = over.Tolerance
	}
	if over.KSpeed != nil {
		c.KSpeed = over.KSpeed
	}
	if over.Seed != nil {
		c.Seed = over.Seed
	}
	if over.Workers != nil {
		c.Workers = over.Workers
	}
	if over.Initial != nil {
		c.Initial = over.Initial
	}
	return c
}

// Validate checks the fields that are set.
func (c Config) Validate() error {
	if c.NIter != nil && *c.NIter < 0 {
		return fmt.Errorf("%w: iterations must be >= 0, got %d", ErrInvalidConfig, *c.NIter)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, *c.Workers)
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"k_gravity", c.KGravity},
		{"k_repulsive", c.KRepulsive},
		{"exponent", c.Exponent},
		{"tolerance", c.Tolerance},
		{"k_speed", c.KSpeed},
	} {
		if f.v != nil && (math.IsNaN(*f.v) || math.IsInf(*f.v, 0)) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, f.name, *f.v)
		}
	}
	return nil
}

// settings is a fully resolved Config, fixed for the length of one run.
type settings struct {
	nIter         int
	linLog        bool
	kGravity      float64
	strongGravity bool
	kRepulsive    float64
	exponent      float64
	noHubs        bool
	tolerance     float64
	kSpeed        float64
	seed          int64
	workers       int
	initial       *mat.Dense
}

// resolve layers conf over defaults and freezes the result for a graph of n
// nodes.
func resolve(defaults Config, conf *Config, n int) (settings, error) {
	c := DefaultConfig().Merge(&defaults).Merge(conf)
	if err := c.Validate(); err != nil {
		return settings{}, err
	}

	s := settings{
		nIter:         *c.NIter,
		linLog:        *c.LinLog,
		kGravity:      *c.KGravity,
		strongGravity: *c.StrongGravity,
		kRepulsive:    *c.KRepulsive,
		exponent:      *c.Exponent,
		noHubs:        *c.NoHubs,
		tolerance:     toleranceFor(n),
		kSpeed:        *c.KSpeed,
		workers:       *c.Workers,
		initial:       c.Initial,
	}
	// an explicit per-call tolerance beats the size heuristic
	if conf != nil && conf.Tolerance != nil {
		s.tolerance = *conf.Tolerance
	}
	if c.Seed != nil {
		s.seed = *c.Seed
	} else {
		s.seed = time.Now().UnixNano()
	}
	if s.workers == 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.workers > n {
		s.workers = n
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s, nil
}

// toleranceFor scales the swing tolerance with the graph size, since swing
// magnitudes grow with the number of nodes.
func toleranceFor(n int) float64 {
	switch {
	case n < 5000:
		return 0.1
	case n < 50000:
		return 1
	default:
		return 10
	}
}
