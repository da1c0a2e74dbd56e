package resample

import (
	"fmt"
	"sort"
)

// ArbitraryResample resamples a fixed-length, fixed-rate input onto an
// arbitrary sorted set of target times, in one batch call. It is used to
// move the dense per-lag NCCF array onto the geometric lag grid.
type ArbitraryResample struct {
	filter          sincFilterDesign
	numInputSamples int
	weights         [][]float64 // per target time: dense weights over [lo, hi]
	spans           [][2]int    // per target time: [lo, hi] inclusive input-sample range
}

// NewArbitraryResample precomputes the sinc weights for each target time.
// targetTimes must be sorted ascending, expressed in seconds with input
// sample 0 located at time 0.
func NewArbitraryResample(numInputSamples int, inputRate float64, cutoff float64, targetTimes []float64, filterWidth int) *ArbitraryResample {
	if !sort.Float64sAreSorted(targetTimes) {
		sorted := append([]float64(nil), targetTimes...)
		sort.Float64s(sorted)
		targetTimes = sorted
	}
	f := sincFilterDesign{cutoffHz: cutoff, halfWidth: filterWidth, sampleRate: inputRate}
	checkPassbandRipple(f, "ArbitraryResample")
	radius := f.radiusSamples()
	weights := make([][]float64, len(targetTimes))
	spans := make([][2]int, len(targetTimes))
	for i, t := range targetTimes {
		center := t * inputRate
		lo := int(center) - radius
		hi := int(center) + radius + 1
		if lo < 0 {
			lo = 0
		}
		if hi > numInputSamples-1 {
			hi = numInputSamples - 1
		}
		w := make([]float64, 0, hi-lo+1)
		for k := lo; k <= hi; k++ {
			w = append(w, f.weight(float64(k)-center))
		}
		weights[i] = w
		spans[i] = [2]int{lo, hi}
	}
	return &ArbitraryResample{
		filter:          f,
		numInputSamples: numInputSamples,
		weights:         weights,
		spans:           spans,
	}
}

// NumOutputSamples returns the number of target times this resampler was
// configured with.
func (r *ArbitraryResample) NumOutputSamples() int {
	return len(r.weights)
}

// Resample maps each row of input (numRows x numInputSamples) onto each
// row of output (numRows x NumOutputSamples()). Rows are independent and
// may be computed in parallel by the caller.
func (r *ArbitraryResample) Resample(input [][]float64, output [][]float64) error {
	if len(input) != len(output) {
		return fmt.Errorf("resample: row count mismatch: input has %d rows, output has %d", len(input), len(output))
	}
	for row := range input {
		if len(input[row]) != r.numInputSamples {
			return fmt.Errorf("resample: row %d has %d samples, expected %d", row, len(input[row]), r.numInputSamples)
		}
		if len(output[row]) != len(r.weights) {
			return fmt.Errorf("resample: output row %d has %d samples, expected %d", row, len(output[row]), len(r.weights))
		}
		for i, w := range r.weights {
			lo := r.spans[i][0]
			sum := 0.0
			for k, wk := range w {
				sum += wk * input[row][lo+k]
			}
			output[row][i] = sum
		}
	}
	return nil
}
