package resample

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/nyquistlabs/pitchtrack/logging"
)

// passbandRippleTolerance bounds how far a designed filter's passband
// magnitude may deviate from unity before a warning is logged.
const passbandRippleTolerance = 0.05

// FrequencyResponse evaluates the magnitude response of the designed
// lowpass filter as a diagnostic self-check. fftSize should exceed the
// filter's tap count; it is zero-padded.
func FrequencyResponse(f sincFilterDesign, fftSize int) []float64 {
	taps := f.taps()
	padded := make([]float64, fftSize)
	copy(padded, taps)
	spectrum := fft.FFTReal(padded)
	mags := make([]float64, len(spectrum)/2+1)
	for i := range mags {
		mags[i] = cmplx.Abs(spectrum[i])
	}
	return mags
}

// checkPassbandRipple logs a warning if the designed filter's passband
// (below cutoffHz) deviates from unity gain by more than the tolerance.
func checkPassbandRipple(f sincFilterDesign, label string) {
	const fftSize = 4096
	mags := FrequencyResponse(f, fftSize)
	passbandBins := int(f.cutoffHz / f.sampleRate * float64(fftSize))
	worst := 0.0
	for i := 0; i < passbandBins && i < len(mags); i++ {
		dev := math.Abs(mags[i] - 1.0)
		if dev > worst {
			worst = dev
		}
	}
	if worst > passbandRippleTolerance {
		logging.Warn("resample filter passband ripple exceeds tolerance", logging.Fields{
			"filter":    label,
			"ripple":    worst,
			"tolerance": passbandRippleTolerance,
		})
	}
}
