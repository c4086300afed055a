package graphlayout

const (
	// MinDistance is the smallest pairwise distance the force model uses.
	// Coincident nodes are treated as this far apart.
	MinDistance = 0.01

	// MinLength is the per-axis displacement length below which LengthFloor
	// is substituted before normalizing.
	MinLength = 0.01

	// LengthFloor replaces displacement lengths under MinLength.
	LengthFloor = 0.1

	// SwingTolerance is the per-node swing under which a node counts as
	// settled. The run stops once every node is settled.
	SwingTolerance = 0.01
)

// clampDistance floors d at MinDistance.
func clampDistance(d float64) float64 {
	if d < MinDistance {
		return MinDistance
	}
	return d
}

// clampLength substitutes LengthFloor for lengths under MinLength.
func clampLength(l float64) float64 {
	if l < MinLength {
		return LengthFloor
	}
	return l
}
