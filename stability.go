package graphlayout

import "math"

// swing measures how much the force on a node changed since the previous
// iteration.
func swing(now, prev float64) float64 {
	return math.Abs(now - prev)
}

// traction measures how consistently the force on a node keeps its value.
func traction(now, prev float64) float64 {
	return math.Abs(now+prev) / 2
}

// settled reports whether every swing is under SwingTolerance.
func settled(swings []float64) bool {
	for _, s := range swings {
		if s >= SwingTolerance {
			return false
		}
	}
	return true
}
