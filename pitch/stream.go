package pitch

import (
	"math"

	"github.com/nyquistlabs/pitchtrack/algorithms/common"
	"github.com/nyquistlabs/pitchtrack/algorithms/lattice"
	"github.com/nyquistlabs/pitchtrack/algorithms/nccf"
	"github.com/nyquistlabs/pitchtrack/algorithms/resample"
	"github.com/nyquistlabs/pitchtrack/logging"
)

// Stream is the streaming orchestrator: it owns the resampler, the frame
// chain, the forward-cost vector, and the emission buffer. One Stream is
// owned by one caller; independent streams may run in separate goroutines.
type Stream struct {
	opts   Options
	logger logging.Logger

	resampler    *resample.LinearResample
	lags         []float64 // seconds, the geometric grid
	sampleL0     int
	sampleL1     int
	numStates    int
	lagResampler *resample.ArbitraryResample
	denseLen     int

	frameLengthSamples int
	frameShiftSamples  int

	pending     []float64 // resampled-rate samples not yet consumed into a frame
	pendingBase int64     // absolute resampled-sample index of pending[0]
	nextFrame   int64     // absolute resampled-sample index of the next frame's start

	sumSamples   float64
	sumSqSamples float64
	numSamples   int

	onlineSum   float64
	onlineSumSq float64
	onlineCount int64

	tailFrame   *lattice.FrameInfo
	frameCount  int
	forwardCost []float32
	remainder   float64

	lagNccf       []lattice.LagNccfEntry
	framesLatency int

	sampleRateSet bool
	inputFinished bool
}

// NewStream validates opts and constructs a ready-to-use Stream.
func NewStream(opts Options) (*Stream, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	lags := nccf.SelectLags(opts.MinF0, opts.MaxF0, opts.DeltaPitch)
	if len(lags) == 0 {
		return nil, &ConfigError{Msg: "empty lag set"}
	}
	l0, l1 := nccf.SampleLagBounds(opts.ResampleRate, opts.MaxF0, opts.MinF0, float64(opts.UpsampleFilterWidth))
	if l0 < 0 {
		l0 = 0
	}
	if l1 < l0 {
		l1 = l0
	}

	frameLengthSamples := int(math.Round(opts.FrameLengthMs * opts.ResampleRate / 1000))
	frameShiftSamples := int(math.Round(opts.FrameShiftMs * opts.ResampleRate / 1000))
	if frameLengthSamples <= 0 {
		frameLengthSamples = 1
	}
	if frameShiftSamples <= 0 {
		frameShiftSamples = 1
	}

	denseLen := l1 - l0 + 1
	targetTimes := make([]float64, len(lags))
	for i, lag := range lags {
		targetTimes[i] = lag - float64(l0)/opts.ResampleRate
	}

	s := &Stream{
		opts:               opts,
		logger:             logging.WithFields(logging.Fields{"component": "pitch.Stream"}),
		resampler:          resample.NewLinearResample(int(opts.SampleRateIn), int(opts.ResampleRate), opts.LowpassCutoff, opts.LowpassFilterWidth),
		lags:               lags,
		sampleL0:           l0,
		sampleL1:           l1,
		numStates:          len(lags),
		lagResampler:       resample.NewArbitraryResample(denseLen, opts.ResampleRate, opts.ResampleRate/2, targetTimes, opts.UpsampleFilterWidth),
		denseLen:           denseLen,
		frameLengthSamples: frameLengthSamples,
		frameShiftSamples:  frameShiftSamples,
		tailFrame:          lattice.NewRootFrame(len(lags)),
		forwardCost:        make([]float32, len(lags)),
	}
	return s, nil
}

// AcceptWaveform pushes the next contiguous chunk of samples, at
// sampleRate (which must equal opts.SampleRateIn), through the resampler
// and the frame/Viterbi pipeline, finalizing and emitting as many frames
// as the lattice's current state permits.
func (s *Stream) AcceptWaveform(sampleRate float64, samples []float64) error {
	if s.sampleRateSet && sampleRate != s.opts.SampleRateIn {
		return &ContractError{Msg: "AcceptWaveform called with a sample rate different from opts.SampleRateIn"}
	}
	if !s.sampleRateSet {
		if sampleRate != s.opts.SampleRateIn {
			return &ContractError{Msg: "AcceptWaveform's first call must use opts.SampleRateIn"}
		}
		s.sampleRateSet = true
	}
	if len(samples) == 0 {
		s.logger.Warn("AcceptWaveform called with a zero-length waveform")
		return nil
	}

	var resampled []float64
	s.resampler.Resample(samples, false, &resampled)
	return s.processResampled(resampled)
}

func (s *Stream) processResampled(resampled []float64) error {
	for _, v := range resampled {
		s.sumSamples += v
		s.sumSqSamples += v * v
	}
	s.numSamples += len(resampled)

	s.pending = append(s.pending, resampled...)
	return s.extractReadyFrames(false)
}

// extractReadyFrames consumes as many complete frames as the currently
// buffered resampled samples allow. When padEnd is true (InputFinished),
// the tail is treated as zero-padded so the final frames can complete.
func (s *Stream) extractReadyFrames(padEnd bool) error {
	windowSize := s.frameLengthSamples
	contextLen := windowSize + s.sampleL1
	realEnd := s.pendingBase + int64(len(s.pending))

	for {
		start := s.nextFrame - s.pendingBase
		need := start + int64(contextLen)
		have := int64(len(s.pending))
		if need > have {
			// Only the lookahead is padded: a frame whose basic window
			// runs past the real samples is not extracted.
			if !padEnd || s.nextFrame+int64(windowSize) > realEnd {
				break
			}
			pad := make([]float64, need-have)
			s.pending = append(s.pending, pad...)
			have = int64(len(s.pending))
		}
		if start < 0 || start+int64(contextLen) > have {
			break
		}

		w := append([]float64(nil), s.pending[start:start+int64(contextLen)]...)
		applyPreemphasis(w, s.opts.PreemphCoeff)

		if err := s.stepFrame(w, windowSize, s.nextFrame); err != nil {
			return err
		}

		s.nextFrame += int64(s.frameShiftSamples)
		s.trimPending()
	}
	return nil
}

func (s *Stream) trimPending() {
	keepFrom := s.nextFrame
	if keepFrom < s.pendingBase {
		return
	}
	trim := keepFrom - s.pendingBase
	if trim <= 0 {
		return
	}
	if trim > int64(len(s.pending)) {
		trim = int64(len(s.pending))
	}
	s.pending = s.pending[trim:]
	s.pendingBase += trim
}

func applyPreemphasis(w []float64, coeff float64) {
	if coeff == 0 || len(w) == 0 {
		return
	}
	for i := len(w) - 1; i > 0; i-- {
		w[i] -= coeff * w[i-1]
	}
	w[0] -= coeff * w[0]
}

// advanceOnlineBallast catches the online (causal) ballast accumulator up
// to the end of the current frame's full window (the basic frame length
// plus the correlation's lookahead out to sampleL1), adding only the
// samples in [onlineCount, frameStart+len(w)) so that overlapping frames
// don't double-count the shared region. This is the "samples seen so
// far" accumulator used when opts.NccfBallastOnline is set, as opposed
// to s.sumSamples/s.sumSqSamples which also include same-call lookahead.
func (s *Stream) advanceOnlineBallast(w []float64, frameStart int64, windowSize int) {
	boundary := frameStart + int64(windowSize) + int64(s.sampleL1)
	if boundary <= s.onlineCount {
		return
	}
	offsetStart := s.onlineCount - frameStart
	if offsetStart < 0 {
		offsetStart = 0
	}
	offsetEnd := int64(len(w))
	for k := offsetStart; k < offsetEnd; k++ {
		v := w[k]
		s.onlineSum += v
		s.onlineSumSq += v * v
	}
	s.onlineCount = boundary
}

// stepFrame runs the correlation/NCCF/Viterbi pipeline for one frame's
// window and appends the resulting frame record. frameStart is the
// absolute resampled-sample index of w's first sample.
func (s *Stream) stepFrame(w []float64, windowSize int, frameStart int64) error {
	inner, norm := nccf.ComputeCorrelation(w, windowSize, s.sampleL0, s.sampleL1)

	var ballastSum, ballastSumSq float64
	var ballastN int
	if s.opts.NccfBallastOnline {
		s.advanceOnlineBallast(w, frameStart, windowSize)
		ballastSum, ballastSumSq, ballastN = s.onlineSum, s.onlineSumSq, int(s.onlineCount)
	} else {
		ballastSum, ballastSumSq, ballastN = s.sumSamples, s.sumSqSamples, s.numSamples
	}
	ballast := nccf.ComputeBallast(ballastSum, ballastSumSq, ballastN, windowSize, s.opts.NccfBallast)
	nccfPitchDense := nccf.ComputeNccf(inner, norm, ballast)
	nccfPovDense := nccf.ComputeNccf(inner, norm, 0)

	in := [][]float64{nccfPitchDense, nccfPovDense}
	out := [][]float64{make([]float64, len(s.lags)), make([]float64, len(s.lags))}
	if err := s.lagResampler.Resample(in, out); err != nil {
		return &ContractError{Msg: err.Error()}
	}
	nccfPitchLags := out[0]
	nccfPovLags := out[1]

	for _, v := range nccfPitchLags {
		if v-v != 0 {
			return &NumericError{Msg: "NaN/Inf detected in pitch NCCF"}
		}
	}
	for _, v := range nccfPovLags {
		if v-v != 0 {
			return &NumericError{Msg: "NaN/Inf detected in POV NCCF"}
		}
	}

	localCost := lattice.ComputeLocalCost(nccfPitchLags, s.lags, s.opts.SoftMinF0)
	thisForward, backpointer, rem := lattice.Step(s.forwardCost, localCost, s.opts.DeltaPitch, s.opts.PenaltyFactor, s.opts.UseNaiveSearch)
	s.remainder += rem
	s.forwardCost = thisForward

	frame := lattice.NewFrame(s.numStates, s.tailFrame)
	copy(frame.Backpointer, backpointer)
	copy(frame.PovNccf, nccfPovLags)
	s.tailFrame = frame
	s.frameCount++
	ready := s.NumFramesReady()
	s.lagNccf = append(s.lagNccf, lattice.LagNccfEntry{LagIndex: -1})

	best := 0
	bestCost := s.forwardCost[0]
	for i, c := range s.forwardCost {
		if c < bestCost {
			bestCost = c
			best = i
		}
	}
	// Traceback writes only the entries at or after ready, so frames that
	// were already ready keep the values a caller may have read.
	lattice.SetBestState(s.tailFrame, best, s.frameCount-1-ready, s.lagNccf[ready:])

	if !s.inputFinished {
		s.framesLatency = lattice.ComputeLatency(s.tailFrame, s.numStates, s.opts.MaxFramesLatency)
	} else {
		s.framesLatency = 0
	}
	s.logger.Debug("frame processed", logging.Fields{"frames_latency": s.framesLatency})
	return nil
}

// NumFramesReady returns the number of finalized frames available via
// GetFrame: frames whose optimal lag will not be revised by future
// traceback.
func (s *Stream) NumFramesReady() int {
	n := len(s.lagNccf) - s.framesLatency
	if n < 0 {
		return 0
	}
	return n
}

// IsLastFrame reports whether t is the final frame of a finished stream.
func (s *Stream) IsLastFrame(t int) bool {
	return s.inputFinished && t == s.NumFramesReady()-1
}

// GetFrame writes (pov_nccf, pitch in Hz) for frame t into out, which
// must have length 2. t must be < NumFramesReady().
func (s *Stream) GetFrame(t int, out []float64) error {
	if t < 0 || t >= s.NumFramesReady() {
		return &ContractError{Msg: "GetFrame called with t >= NumFramesReady()"}
	}
	if len(out) != 2 {
		return &ContractError{Msg: "GetFrame requires an output slice of length 2"}
	}
	entry := s.lagNccf[t]
	out[0] = entry.PovNccf
	out[1] = 1.0 / s.lags[entry.LagIndex]
	return nil
}

// InputFinished signals that no more samples will arrive. It flushes the
// resampler's buffered tail, extracts the last frames with zero-padded
// lookahead, and forces latency to 0 so every processed frame becomes
// ready.
func (s *Stream) InputFinished() error {
	var flushed []float64
	s.resampler.Resample(nil, true, &flushed)
	if err := s.processResampled(flushed); err != nil {
		return err
	}
	s.inputFinished = true
	if err := s.extractReadyFrames(true); err != nil {
		return err
	}
	s.framesLatency = 0
	if s.frameCount == 0 {
		s.logger.Warn("no frames produced by end of stream")
	}
	avgCost := 0.0
	if s.frameCount > 0 {
		avgCost = s.remainder / float64(s.frameCount)
	}
	pitches := make([]float64, 0, len(s.lagNccf))
	for _, e := range s.lagNccf {
		if e.LagIndex >= 0 {
			pitches = append(pitches, 1.0/s.lags[e.LagIndex])
		}
	}
	s.logger.Debug("stream finished", logging.Fields{
		"avg_cost":  avgCost,
		"frames":    s.frameCount,
		"avg_pitch": common.Mean(pitches),
	})
	return nil
}
