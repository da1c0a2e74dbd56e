package postprocess

import (
	"math"

	"github.com/nyquistlabs/pitchtrack/algorithms/nccf"
	"github.com/nyquistlabs/pitchtrack/logging"
)

// PitchSource is the subset of pitch.Stream's contract the online
// processor needs. Declared here, rather than importing pitch.Stream
// directly, so this package depends only on the behavior it uses.
type PitchSource interface {
	NumFramesReady() int
	GetFrame(t int, out []float64) error
}

// Processor incrementally derives composed features from a PitchSource,
// reading only its finalized frames so that traceback revisions to
// not-yet-ready frames never leak into already-emitted output.
type Processor struct {
	opts   Options
	logger logging.Logger

	rawNccf     []float64
	rawLogPitch []float64

	output [][]float64 // logical length == len(rawLogPitch); capacity grows by >= 1.5x
}

// NewProcessor validates opts and returns a ready Processor.
func NewProcessor(opts Options) (*Processor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Processor{
		opts:   opts,
		logger: logging.WithFields(logging.Fields{"component": "postprocess.Processor"}),
	}, nil
}

// UpdateFromPitch appends every newly finalized frame from src and
// recomputes the composed output for the new tail, using the entire
// accumulated context for normalization and delta filtering.
func (p *Processor) UpdateFromPitch(src PitchSource) error {
	ready := src.NumFramesReady()
	frameStart := len(p.rawLogPitch)
	if ready <= frameStart {
		return nil
	}

	frame := make([]float64, 2)
	for t := frameStart; t < ready; t++ {
		if err := src.GetFrame(t, frame); err != nil {
			return err
		}
		lp, err := logPitch(frame[1])
		if err != nil {
			return err
		}
		p.rawNccf = append(p.rawNccf, frame[0])
		p.rawLogPitch = append(p.rawLogPitch, lp)
	}

	povWeight := make([]float64, len(p.rawNccf))
	for i, v := range p.rawNccf {
		povWeight[i] = nccf.NccfToPov(v)
	}
	normTail := WeightedMovingWindowNormalize(povWeight, p.rawLogPitch, p.opts.NormalizationWindowSize, frameStart)

	deltaFull := Delta(p.rawLogPitch, p.opts.DeltaWindow)
	addDither(deltaFull, p.opts.DeltaPitchNoiseStddev)

	p.ensureCapacity(ready)
	for i, t := 0, frameStart; t < ready; i, t = i+1, t+1 {
		povFeature := nccf.NccfToPovFeature(p.rawNccf[t])
		p.output[t] = composeRow(p.opts, povFeature, normTail[i], deltaFull[t], p.rawLogPitch[t])
	}
	p.logger.Debug("postprocess updated", logging.Fields{"frames": ready})
	return nil
}

// ensureCapacity grows p.output's backing array by a factor of at least
// 1.5 whenever n exceeds its current capacity, to keep amortized append
// cost linear.
func (p *Processor) ensureCapacity(n int) {
	if cap(p.output) >= n {
		p.output = p.output[:n]
		return
	}
	newCap := cap(p.output)
	if newCap == 0 {
		newCap = 8
	}
	for newCap < n {
		newCap = int(math.Ceil(float64(newCap) * 1.5))
	}
	grown := make([][]float64, n, newCap)
	copy(grown, p.output)
	p.output = grown
}

// NumFramesReady returns how many composed rows are currently available.
func (p *Processor) NumFramesReady() int {
	return len(p.output)
}

// GetFrame returns the composed feature row for frame t.
func (p *Processor) GetFrame(t int) []float64 {
	return p.output[t]
}
