package nccf

import "math"

// SelectLags builds the geometric lag grid (in seconds) from 1/maxF0 up to
// 1/minF0, with ratio 1+deltaPitch between adjacent entries. The returned
// slice is strictly increasing and always includes at least one entry.
func SelectLags(minF0, maxF0, deltaPitch float64) []float64 {
	minLag := 1.0 / maxF0
	maxLag := 1.0 / minF0
	var lags []float64
	for lag := minLag; lag <= maxLag; lag *= 1 + deltaPitch {
		lags = append(lags, lag)
	}
	if len(lags) == 0 {
		lags = append(lags, minLag)
	}
	return lags
}

// SampleLagBounds returns the integer sample-lag range [L0, L1] (at
// resampleRate) that must be densely computed so that the arbitrary-grid
// resampler configured with sinc support upsampleFilterWidth can evaluate
// every entry of the geometric lag grid.
func SampleLagBounds(resampleRate, maxF0, minF0, upsampleFilterWidth float64) (l0, l1 int) {
	l0 = int(math.Ceil(resampleRate * (1/maxF0 - upsampleFilterWidth/(2*resampleRate))))
	l1 = int(math.Floor(resampleRate * (1/minF0 + upsampleFilterWidth/(2*resampleRate))))
	return l0, l1
}
