package graphlayout

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// GraphRenderer turns an adjacency matrix into n x 2 coordinates.
type GraphRenderer func(*mat.Dense, <-chan struct{}, *Config) (*mat.Dense, error)

var (
	ErrSimulationStopped = errors.New("layout simulation stopped")
)

var _ GraphRenderer = ForceAtlas2Layout
