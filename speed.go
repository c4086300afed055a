package graphlayout

import "math"

// nodeSpeed damps the step of a node in proportion to its own swing.
func nodeSpeed(kSpeed, globalSpeed, swing float64) float64 {
	return kSpeed * globalSpeed / (1 + globalSpeed*math.Sqrt(swing))
}

// nextGlobalSpeed derives the global speed for the next iteration from the
// degree weighted sums of traction and swing. With no swing at all the speed
// is left unchanged and ok is false: the layout has stopped moving.
func nextGlobalSpeed(tolerance, globalTraction, globalSwing, current float64) (speed float64, ok bool) {
	if globalSwing == 0 {
		return current, false
	}
	return tolerance * globalTraction / globalSwing, true
}
