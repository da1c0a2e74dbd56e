package resample

import "math"

// sincFilterDesign holds the shared windowed-sinc lowpass used by both
// LinearResample and ArbitraryResample: a Hann-windowed sinc evaluated at
// a cutoff frequency, truncated to a fixed number of zero crossings.
type sincFilterDesign struct {
	cutoffHz   float64
	halfWidth  int     // number of zero crossings on each side of the lobe
	sampleRate float64 // rate (Hz) the tap positions are expressed in
}

// samplesPerLobe is the spacing, in samples of sampleRate, between
// successive zero crossings of the sinc at cutoffHz.
func (f sincFilterDesign) samplesPerLobe() float64 {
	return f.sampleRate / (2 * f.cutoffHz)
}

// radiusSamples is the support radius of the truncated filter, in samples
// of sampleRate, rounded up so every requested tap is inside the support.
func (f sincFilterDesign) radiusSamples() int {
	return int(math.Ceil(float64(f.halfWidth) * f.samplesPerLobe()))
}

// weight evaluates the windowed-sinc tap at a real-valued offset (in
// samples of sampleRate) from the filter's center.
func (f sincFilterDesign) weight(offset float64) float64 {
	radius := float64(f.radiusSamples())
	if offset <= -radius || offset >= radius {
		return 0
	}
	// Hann window over [-radius, radius], sinc at the normalized cutoff,
	// scaled by 2*cutoff/sampleRate so the passband gain is about 1.
	window := 0.5 + 0.5*math.Cos(math.Pi*offset/radius)
	x := 2 * f.cutoffHz / f.sampleRate * offset
	var sinc float64
	if x == 0 {
		sinc = 1.0
	} else {
		sinc = math.Sin(math.Pi*x) / (math.Pi * x)
	}
	return window * sinc * 2 * f.cutoffHz / f.sampleRate
}

// taps returns the filter impulse response sampled at integer offsets
// from -radius to +radius, divided by its sum so that the DC response is
// exactly 1.
func (f sincFilterDesign) taps() []float64 {
	radius := f.radiusSamples()
	out := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		w := f.weight(float64(i))
		out[i+radius] = w
		sum += w
	}
	if sum != 0 {
		for i := range out {
			out[i] /= sum
		}
	}
	return out
}
