// Package resample implements the streaming and batch resamplers that the
// pitch tracker uses to move a waveform between its input rate and the
// internal working rate, and to move the dense NCCF array onto the
// geometric lag grid.
package resample

import "math"

// LinearResample converts a causal, lazily-chunked sample stream from one
// fixed rate to another. It preserves phase across calls: feeding it the
// same waveform split into arbitrary chunks yields the same output samples
// as feeding it in one call, as long as Flush is only requested on the
// final chunk.
type LinearResample struct {
	filter     sincFilterDesign
	inputRate  int
	outputRate int
	buf        []float64 // absolute samples [bufStart, bufStart+len(buf))
	bufStart   int64
	totalInput int64 // absolute count of samples ever pushed in
	nextOutput int64 // absolute index of the next output sample to produce
}

// NewLinearResample builds a resampler with the given lowpass cutoff (Hz,
// must not exceed half of either rate) and filter width (number of sinc
// zero crossings on each side of the window).
func NewLinearResample(inputRate, outputRate int, lowpassCutoff float64, lowpassFilterWidth int) *LinearResample {
	f := sincFilterDesign{
		cutoffHz:   lowpassCutoff,
		halfWidth:  lowpassFilterWidth,
		sampleRate: float64(inputRate),
	}
	checkPassbandRipple(f, "LinearResample")
	return &LinearResample{
		filter:     f,
		inputRate:  inputRate,
		outputRate: outputRate,
	}
}

// Resample appends newly available output samples to out, given the next
// chunk of input samples. With flush=false, samples near the tail of the
// input whose output depends on not-yet-seen future input are buffered
// internally rather than emitted. With flush=true, any remaining buffered
// input is drained as if no further input will ever arrive (missing
// future taps are treated as zero).
func (r *LinearResample) Resample(input []float64, flush bool, out *[]float64) {
	r.buf = append(r.buf, input...)
	r.totalInput += int64(len(input))

	radius := int64(r.filter.radiusSamples())
	ratio := float64(r.inputRate) / float64(r.outputRate)

	for {
		center := float64(r.nextOutput) * ratio
		centerIdx := int64(math.Floor(center))
		if !flush && centerIdx+radius >= r.totalInput {
			break
		}
		sum := 0.0
		lo := centerIdx - radius
		hi := centerIdx + radius
		for k := lo; k <= hi; k++ {
			if k < 0 || k >= r.totalInput {
				continue
			}
			bufPos := k - r.bufStart
			if bufPos < 0 || bufPos >= int64(len(r.buf)) {
				continue
			}
			sum += r.buf[bufPos] * r.filter.weight(float64(k)-center)
		}
		*out = append(*out, sum)
		r.nextOutput++
		if flush && centerIdx >= r.totalInput {
			break
		}
	}

	// Trim the buffer to only what future calls could still need as tail:
	// samples from (next output's center - radius) onward.
	nextCenter := int64(math.Floor(float64(r.nextOutput) * ratio))
	keepFrom := nextCenter - radius
	if keepFrom < r.bufStart {
		keepFrom = r.bufStart
	}
	if keepFrom > r.bufStart {
		trim := keepFrom - r.bufStart
		if trim > int64(len(r.buf)) {
			trim = int64(len(r.buf))
		}
		r.buf = r.buf[trim:]
		r.bufStart += trim
	}
}

// Reset clears all carried state, as if the resampler were newly
// constructed.
func (r *LinearResample) Reset() {
	r.buf = nil
	r.bufStart = 0
	r.totalInput = 0
	r.nextOutput = 0
}
