// Package nccf computes the normalized cross-correlation function used to
// score candidate pitch lags: the correlation kernel, its online energy
// ballast, the voicing-probability map, and the geometric lag grid.
package nccf

import "gonum.org/v1/gonum/floats"

// ComputeCorrelation computes, for every integer lag in [firstLag, lastLag],
// the mean-removed inner product and the product of the two windows'
// self-energies, over a window w of length windowSize+lastLag (so that
// w[k+lag] is defined for every k < windowSize and every lag in range).
//
// The mean subtracted from every sample of w, including samples past
// windowSize, is the mean of only the first windowSize samples. So the
// energy of a lag-shifted window is not the mean-removed energy of that
// shifted window taken on its own; this asymmetry is intentional and
// downstream callers depend on it.
func ComputeCorrelation(w []float64, windowSize, firstLag, lastLag int) (inner, norm []float64) {
	n := lastLag - firstLag + 1
	inner = make([]float64, n)
	norm = make([]float64, n)

	mean := floats.Sum(w[:windowSize]) / float64(windowSize)
	shifted := make([]float64, len(w))
	for i, v := range w {
		shifted[i] = v - mean
	}

	e1 := 0.0
	for k := 0; k < windowSize; k++ {
		e1 += shifted[k] * shifted[k]
	}

	for lagIdx := 0; lagIdx < n; lagIdx++ {
		lag := firstLag + lagIdx
		var innerSum, e2 float64
		for k := 0; k < windowSize; k++ {
			sk := shifted[k+lag]
			innerSum += shifted[k] * sk
			e2 += sk * sk
		}
		inner[lagIdx] = innerSum
		norm[lagIdx] = e1 * e2
	}
	return inner, norm
}
