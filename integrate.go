package graphlayout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// axisLengths returns the Euclidean norm of the x and of the y components of
// all displacements.
func axisLengths(delta []r2.Vec) r2.Vec {
	var l r2.Vec
	for _, d := range delta {
		l.X += d.X * d.X
		l.Y += d.Y * d.Y
	}
	return r2.Vec{X: math.Sqrt(l.X), Y: math.Sqrt(l.Y)}
}

// integrate rescales delta so each axis moves by stepMax overall and adds it
// to pos.
func integrate(pos, delta []r2.Vec, stepMax float64) {
	l := axisLengths(delta)
	sx := stepMax / clampLength(l.X)
	sy := stepMax / clampLength(l.Y)
	for i, d := range delta {
		pos[i].X += d.X * sx
		pos[i].Y += d.Y * sy
	}
}

// spread is the largest extent of pos along either axis.
func spread(pos []r2.Vec) float64 {
	if len(pos) == 0 {
		return 0
	}
	lo, hi := pos[0], pos[0]
	for _, p := range pos[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return math.Max(hi.X-lo.X, hi.Y-lo.Y)
}
