package lattice

// Step runs one frame's Viterbi update: the monotone-bounds (or naive)
// transition search from prevForward, plus the current frame's local
// cost, renormalized so the returned forward-cost vector's minimum is 0.
//
// Forward costs are carried in single precision, a two-tier numeric
// scheme; the discarded per-frame minimum is returned
// separately in double precision so a caller can accumulate it without
// losing precision over a long stream.
func Step(prevForward []float32, localCost []float64, deltaPitch, penaltyFactor float64, useNaiveSearch bool) (thisForward []float32, backpointer []int, remainder float64) {
	n := len(prevForward)
	prevForward64 := make([]float64, n)
	for i, v := range prevForward {
		prevForward64[i] = float64(v)
	}

	backpointer, transitionMin := ComputeBacktraces(prevForward64, deltaPitch, penaltyFactor, useNaiveSearch)

	thisForward64 := make([]float64, n)
	minVal := transitionMin[0] + localCost[0]
	for i := range thisForward64 {
		v := transitionMin[i] + localCost[i]
		thisForward64[i] = v
		if v < minVal {
			minVal = v
		}
	}

	thisForward = make([]float32, n)
	for i, v := range thisForward64 {
		thisForward[i] = float32(v - minVal)
	}
	return thisForward, backpointer, minVal
}
