package nccf

import (
	"math"

	"github.com/nyquistlabs/pitchtrack/algorithms/common"
)

// ComputeBallast returns the additive denominator regularizer for the
// pitch NCCF, from the running sum/sum-of-squares of the samples seen so
// far (or seen so far plus the current call, depending on the caller's
// accounting), and the correlation window size W.
func ComputeBallast(sum, sumsq float64, n int, windowSize int, nccfBallast float64) float64 {
	if n == 0 {
		return 0
	}
	meanSquare := sumsq/float64(n) - (sum/float64(n))*(sum/float64(n))
	ws := meanSquare * float64(windowSize)
	return ws * ws * nccfBallast
}

// ComputeNccf maps correlation inner products and norms to the normalized
// cross-correlation, given the additive ballast (0 for the POV variant).
// The result is 0 wherever the denominator is 0; the caller is expected to
// guarantee the numerator is also 0 in that case.
func ComputeNccf(inner, norm []float64, ballast float64) []float64 {
	out := make([]float64, len(inner))
	for i := range inner {
		denomSq := norm[i] + ballast
		if denomSq <= 0 {
			out[i] = 0
			continue
		}
		out[i] = inner[i] / math.Sqrt(denomSq)
	}
	return out
}

// NccfToPov maps a raw NCCF value to a probability of voicing via a
// hand-tuned sigmoid of a polynomial-in-exponentials. The constants are
// empirically tuned, not derived.
func NccfToPov(n float64) float64 {
	nPrime := math.Abs(n)
	if nPrime > 1.0 {
		nPrime = 1.0
	}
	r := -5.2 + 5.4*math.Exp(7.5*(nPrime-1.0)) + 4.8*nPrime -
		2.0*math.Exp(-10.0*nPrime) + 4.2*math.Exp(20.0*(nPrime-1.0))
	return 1.0 / (1.0 + math.Exp(-r))
}

// NccfToPovFeature maps a raw NCCF value to the feature used downstream by
// the post-processor's probability-of-voicing column:
// F(x) = (1.0001 - clip(x,-1,1))^0.15 - 1.
func NccfToPovFeature(n float64) float64 {
	clipped := common.Clamp(n, -1, 1)
	return math.Pow(1.0001-clipped, 0.15) - 1.0
}
