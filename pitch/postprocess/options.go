// Package postprocess derives the four scalar pitch-tracking features
// (probability-of-voicing feature, normalized log-pitch, delta log-pitch,
// raw log-pitch) from a pitch.Stream's primitive (pov_nccf, pitch_hz)
// output, both as a one-shot batch transform and as an online processor
// that tracks a stream incrementally.
package postprocess

import "fmt"

// Options configures feature composition and scaling.
type Options struct {
	NormalizationWindowSize int     `json:"normalization_window_size"`
	DeltaWindow             int     `json:"delta_window"`
	PitchScale              float64 `json:"pitch_scale"`
	DeltaPitchScale         float64 `json:"delta_pitch_scale"`
	PovScale                float64 `json:"pov_scale"`
	DeltaPitchNoiseStddev   float64 `json:"delta_pitch_noise_stddev"`

	AddPovFeature         bool `json:"add_pov_feature"`
	AddNormalizedLogPitch bool `json:"add_normalized_log_pitch"`
	AddDeltaPitch         bool `json:"add_delta_pitch"`
	AddRawLogPitch        bool `json:"add_raw_log_pitch"`
}

// DefaultOptions mirrors the conventional feature set: pov feature,
// normalized log-pitch, and delta-pitch, without the raw log-pitch column.
func DefaultOptions() Options {
	return Options{
		NormalizationWindowSize: 151,
		DeltaWindow:             2,
		PitchScale:              2,
		DeltaPitchScale:         10,
		PovScale:                1,
		DeltaPitchNoiseStddev:   0.2,
		AddPovFeature:           true,
		AddNormalizedLogPitch:   true,
		AddDeltaPitch:           true,
		AddRawLogPitch:          false,
	}
}

// Validate reports this module's configuration errors: no output column
// enabled at all, or a non-positive normalization or delta window.
func (o Options) Validate() error {
	if !o.AddPovFeature && !o.AddNormalizedLogPitch && !o.AddDeltaPitch && !o.AddRawLogPitch {
		return fmt.Errorf("postprocess: configuration error: all four output flags are disabled")
	}
	if o.NormalizationWindowSize <= 0 {
		return fmt.Errorf("postprocess: configuration error: normalization_window_size must be positive")
	}
	if o.DeltaWindow <= 0 {
		return fmt.Errorf("postprocess: configuration error: delta_window must be positive")
	}
	return nil
}

// NumColumns returns how many columns Process/Processor will emit for
// these options.
func (o Options) NumColumns() int {
	n := 0
	if o.AddPovFeature {
		n++
	}
	if o.AddNormalizedLogPitch {
		n++
	}
	if o.AddDeltaPitch {
		n++
	}
	if o.AddRawLogPitch {
		n++
	}
	return n
}
