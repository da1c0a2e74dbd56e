package postprocess

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nyquistlabs/pitchtrack/algorithms/nccf"
)

// addDither adds zero-mean Gaussian noise with the given standard
// deviation to every element of x, in place. stddev == 0 is a no-op.
func addDither(x []float64, stddev float64) {
	if stddev == 0 {
		return
	}
	d := distuv.Normal{Mu: 0, Sigma: stddev}
	for i := range x {
		x[i] += d.Rand()
	}
}

// logPitch guards the log path against non-positive pitch, which would
// otherwise produce -Inf/NaN that propagate silently into every
// downstream column.
func logPitch(hz float64) (float64, error) {
	if hz <= 0 {
		return 0, fmt.Errorf("postprocess: numeric error: non-positive pitch %v entering the log path", hz)
	}
	return math.Log(hz), nil
}

func composeRow(opts Options, povFeature, normalizedLogPitch, deltaLogPitch, rawLogPitch float64) []float64 {
	row := make([]float64, 0, 4)
	if opts.AddPovFeature {
		row = append(row, povFeature*opts.PovScale)
	}
	if opts.AddNormalizedLogPitch {
		row = append(row, normalizedLogPitch*opts.PitchScale)
	}
	if opts.AddDeltaPitch {
		row = append(row, deltaLogPitch*opts.DeltaPitchScale)
	}
	if opts.AddRawLogPitch {
		row = append(row, rawLogPitch)
	}
	return row
}

// Process runs the full batch pipeline: given the raw (unballasted) NCCF
// and pitch-in-Hz emitted by a finished pitch.Stream, it derives the POV
// weight and feature, the log-pitch, the moving-window-normalized
// log-pitch, and the delta log-pitch, and composes the configured output
// columns.
func Process(opts Options, rawNccf, pitchHz []float64) ([][]float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	n := len(rawNccf)
	rawLogPitch := make([]float64, n)
	povWeight := make([]float64, n)
	povFeature := make([]float64, n)
	for i := range rawNccf {
		lp, err := logPitch(pitchHz[i])
		if err != nil {
			return nil, err
		}
		rawLogPitch[i] = lp
		povWeight[i] = nccf.NccfToPov(rawNccf[i])
		povFeature[i] = nccf.NccfToPovFeature(rawNccf[i])
	}

	norm := WeightedMovingWindowNormalize(povWeight, rawLogPitch, opts.NormalizationWindowSize, 0)

	deltaLogPitch := Delta(rawLogPitch, opts.DeltaWindow)
	addDither(deltaLogPitch, opts.DeltaPitchNoiseStddev)

	out := make([][]float64, n)
	for t := 0; t < n; t++ {
		out[t] = composeRow(opts, povFeature[t], norm[t], deltaLogPitch[t], rawLogPitch[t])
	}
	return out, nil
}
