package lattice

import "math"

// ComputeBacktraces finds, for every state i at the current frame, the
// predecessor state j at the previous frame minimizing
// prevForward[j] + (j-i)^2*transitionCoeff, and the resulting minimized
// transition cost (before the current frame's local cost is added).
//
// Because the combined cost (j-i)^2*coeff + prevForward[j] satisfies the
// Monge condition in (i,j) regardless of prevForward's values, the
// minimizing j is non-decreasing in i. naiveBacktraces ignores this and
// checks every (i,j) pair; boundedBacktraces exploits it to shrink the
// search window across alternating forward/backward passes. Both must
// return identical results; useNaiveSearch selects which runs.
func ComputeBacktraces(prevForward []float64, deltaPitch, penaltyFactor float64, useNaiveSearch bool) (backpointer []int, transitionMin []float64) {
	coeff := transitionCoefficient(deltaPitch, penaltyFactor)
	if useNaiveSearch {
		return naiveBacktraces(prevForward, coeff)
	}
	return boundedBacktraces(prevForward, coeff)
}

func naiveBacktraces(prevForward []float64, coeff float64) ([]int, []float64) {
	n := len(prevForward)
	backpointer := make([]int, n)
	transitionMin := make([]float64, n)
	for i := 0; i < n; i++ {
		best := math.Inf(1)
		bestJ := 0
		for j := 0; j < n; j++ {
			c := prevForward[j] + transitionCost(i, j, coeff)
			if c < best {
				best = c
				bestJ = j
			}
		}
		backpointer[i] = bestJ
		transitionMin[i] = best
	}
	return backpointer, transitionMin
}

// boundedBacktraces narrows, for each state i, the window of candidate
// predecessors [lo[i], hi[i]] across alternating forward and backward
// passes, using the monotonicity of the true minimizer in i to discard
// predecessors outside the window. It converges to the exact same
// backpointer/transitionMin as naiveBacktraces, in near-linear time once
// the windows have narrowed, rather than the naive algorithm's O(n^2).
func boundedBacktraces(prevForward []float64, coeff float64) ([]int, []float64) {
	n := len(prevForward)
	lo := make([]int, n)
	hi := make([]int, n)
	for i := range hi {
		hi[i] = n - 1
	}
	backpointer := make([]int, n)
	transitionMin := make([]float64, n)

	// scan walks j from lo to hi looking for the minimizer. prevForward is
	// always non-negative here (it is a renormalized forward-cost vector,
	// min 0), so once j has passed i and (j-i)^2*coeff alone exceeds the
	// current best, no larger j can improve on it; the scan can stop
	// without ever looking at prevForward[j] for those j. This is what
	// keeps each pass close to linear once the windows have narrowed.
	scan := func(i, lo, hi int) (int, float64) {
		best := math.Inf(1)
		bestJ := lo
		for j := lo; j <= hi; j++ {
			d := float64(j - i)
			if j >= i && d*d*coeff > best {
				break
			}
			c := prevForward[j] + transitionCost(i, j, coeff)
			if c < best {
				best = c
				bestJ = j
			}
		}
		return bestJ, best
	}

	// Pass 0 (forward): establishes an initial lower bound per state.
	runningLo := 0
	for i := 0; i < n; i++ {
		j, c := scan(i, runningLo, hi[i])
		backpointer[i] = j
		transitionMin[i] = c
		lo[i] = j
		runningLo = j
	}

	maxPasses := n
	for pass := 1; pass <= maxPasses; pass++ {
		changed := false
		if pass%2 == 1 {
			// Backward pass: tighten hi using monotonicity from the right.
			runningHi := n - 1
			for i := n - 1; i >= 0; i-- {
				searchHi := hi[i]
				if runningHi < searchHi {
					searchHi = runningHi
				}
				if searchHi < lo[i] {
					searchHi = lo[i]
				}
				j, c := scan(i, lo[i], searchHi)
				if j != backpointer[i] || c != transitionMin[i] {
					changed = true
				}
				backpointer[i] = j
				transitionMin[i] = c
				hi[i] = j
				runningHi = j
			}
		} else {
			// Forward pass: tighten lo using monotonicity from the left.
			runningLo := 0
			for i := 0; i < n; i++ {
				searchLo := lo[i]
				if runningLo > searchLo {
					searchLo = runningLo
				}
				if searchLo > hi[i] {
					searchLo = hi[i]
				}
				j, c := scan(i, searchLo, hi[i])
				if j != backpointer[i] || c != transitionMin[i] {
					changed = true
				}
				backpointer[i] = j
				transitionMin[i] = c
				lo[i] = j
				runningLo = j
			}
		}
		if !changed {
			break
		}
	}

	return backpointer, transitionMin
}
