package lattice

import "math"

// ComputeLocalCost computes the per-state local cost at a frame from the
// ballasted pitch NCCF and the lag each state represents: states with high
// correlation and a lag favored by softMinF0 are cheap.
func ComputeLocalCost(nccfPitch, lags []float64, softMinF0 float64) []float64 {
	out := make([]float64, len(nccfPitch))
	for i := range out {
		out[i] = 1 - nccfPitch[i]*(1-softMinF0*lags[i])
	}
	return out
}

// transitionCoefficient returns the k such that transition(i,j) = k*(j-i)^2,
// from the lag grid's geometric ratio and the configured penalty.
func transitionCoefficient(deltaPitch, penaltyFactor float64) float64 {
	l := math.Log(1 + deltaPitch)
	return l * l * penaltyFactor
}

func transitionCost(i, j int, coeff float64) float64 {
	d := float64(j - i)
	return d * d * coeff
}
