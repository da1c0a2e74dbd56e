package postprocess

// windowBounds returns the [a, b) window of length windowSize centered on
// t, clipped to [0, n) and shifted toward the interior so it keeps its
// full length whenever n >= windowSize.
func windowBounds(t, n, windowSize int) (int, int) {
	a := t - windowSize/2
	b := a + windowSize
	if a < 0 {
		b -= a
		a = 0
	}
	if b > n {
		a -= b - n
		b = n
	}
	if a < 0 {
		a = 0
	}
	return a, b
}

// WeightedMovingWindowNormalize subtracts, from each rawLogPitch[t] for
// t in [frameStart, len(rawLogPitch)), the pov-weighted mean of
// rawLogPitch over a window of length windowSize centered on t. pov and
// rawLogPitch must have the same length; frameStart lets a caller ask for
// output over only a tail while the window still draws on the full
// context before it.
//
// The running weighted_sum/pov_sum accumulators are updated incrementally
// as the window's bounds change from one t to the next, rather than
// resummed from scratch.
func WeightedMovingWindowNormalize(pov, rawLogPitch []float64, windowSize, frameStart int) []float64 {
	n := len(rawLogPitch)
	if frameStart >= n {
		return nil
	}
	out := make([]float64, n-frameStart)

	prevA, prevB := -1, -1
	var weightedSum, povSum float64

	for t := frameStart; t < n; t++ {
		a, b := windowBounds(t, n, windowSize)
		switch {
		case prevA == -1:
			for k := a; k < b; k++ {
				weightedSum += pov[k] * rawLogPitch[k]
				povSum += pov[k]
			}
		default:
			for k := prevA; k < a; k++ {
				weightedSum -= pov[k] * rawLogPitch[k]
				povSum -= pov[k]
			}
			for k := b; k < prevB; k++ {
				weightedSum -= pov[k] * rawLogPitch[k]
				povSum -= pov[k]
			}
			for k := a; k < prevA; k++ {
				weightedSum += pov[k] * rawLogPitch[k]
				povSum += pov[k]
			}
			for k := prevB; k < b; k++ {
				weightedSum += pov[k] * rawLogPitch[k]
				povSum += pov[k]
			}
		}
		prevA, prevB = a, b

		mean := 0.0
		if povSum != 0 {
			mean = weightedSum / povSum
		}
		out[t-frameStart] = rawLogPitch[t] - mean
	}
	return out
}
