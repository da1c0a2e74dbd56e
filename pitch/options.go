// Package pitch implements the streaming fundamental-frequency tracker:
// resampling, per-frame NCCF computation, and the Viterbi lattice that
// jointly decides voicing and pitch across all frames of a stream.
package pitch

import "fmt"

// Options configures a Stream. It is static for the lifetime of the
// stream it constructs.
type Options struct {
	SampleRateIn float64 `json:"sample_rate_in"`
	ResampleRate float64 `json:"resample_rate"`

	LowpassCutoff      float64 `json:"lowpass_cutoff"`
	LowpassFilterWidth int     `json:"lowpass_filter_width"`

	MinF0      float64 `json:"min_f0"`
	MaxF0      float64 `json:"max_f0"`
	DeltaPitch float64 `json:"delta_pitch"`

	FrameLengthMs float64 `json:"frame_length_ms"`
	FrameShiftMs  float64 `json:"frame_shift_ms"`
	PreemphCoeff  float64 `json:"preemph_coeff"`

	SoftMinF0     float64 `json:"soft_min_f0"`
	PenaltyFactor float64 `json:"penalty_factor"`

	NccfBallast       float64 `json:"nccf_ballast"`
	NccfBallastOnline bool    `json:"nccf_ballast_online"`

	UpsampleFilterWidth int `json:"upsample_filter_width"`
	// MaxFramesLatency caps how many frames a not-yet-unambiguous best
	// path can hold back from NumFramesReady. A value <= 0 holds back
	// nothing: every processed frame is immediately ready, at the cost of
	// possibly emitting a suboptimal lag that a later frame's traceback
	// would have revised.
	MaxFramesLatency int `json:"max_frames_latency"`
	FramesPerChunk   int `json:"frames_per_chunk"`

	// UseNaiveSearch selects the O(L^2) backtrace solver instead of the
	// monotone-bounds one. Test-only wiring: see DESIGN.md's REDESIGN FLAG
	// entry for why this is a parameter rather than a package-level flag.
	UseNaiveSearch bool `json:"use_naive_search"`
}

// DefaultOptions returns the conventional parameterization for 16 kHz
// speech-range pitch tracking.
func DefaultOptions() Options {
	return Options{
		SampleRateIn:        16000,
		ResampleRate:        4000,
		LowpassCutoff:       1000,
		LowpassFilterWidth:  1,
		MinF0:               50,
		MaxF0:               400,
		DeltaPitch:          0.005,
		FrameLengthMs:       25,
		FrameShiftMs:        10,
		PreemphCoeff:        0,
		SoftMinF0:           10,
		PenaltyFactor:       0.1,
		NccfBallast:         7000,
		NccfBallastOnline:   false,
		UpsampleFilterWidth: 5,
		MaxFramesLatency:    0,
		FramesPerChunk:      0,
		UseNaiveSearch:      false,
	}
}

// Validate checks every configuration error named in the interface
// contract. It is called once, at stream construction.
func (o Options) Validate() error {
	switch {
	case o.SampleRateIn <= 0:
		return &ConfigError{Msg: fmt.Sprintf("sample_rate_in must be positive, got %v", o.SampleRateIn)}
	case o.ResampleRate <= 0:
		return &ConfigError{Msg: fmt.Sprintf("resample_rate must be positive, got %v", o.ResampleRate)}
	case o.MinF0 <= 0:
		return &ConfigError{Msg: fmt.Sprintf("min_f0 must be positive, got %v", o.MinF0)}
	case o.MaxF0 <= o.MinF0:
		return &ConfigError{Msg: fmt.Sprintf("max_f0 (%v) must exceed min_f0 (%v)", o.MaxF0, o.MinF0)}
	case o.DeltaPitch <= 0:
		return &ConfigError{Msg: fmt.Sprintf("delta_pitch must be positive, got %v", o.DeltaPitch)}
	case o.FrameLengthMs <= 0 || o.FrameShiftMs <= 0:
		return &ConfigError{Msg: "frame_length_ms and frame_shift_ms must be positive"}
	case o.LowpassFilterWidth <= 0 || o.UpsampleFilterWidth <= 0:
		return &ConfigError{Msg: "lowpass_filter_width and upsample_filter_width must be positive"}
	}
	return nil
}
