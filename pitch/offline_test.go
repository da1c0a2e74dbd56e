package pitch

import (
	"math"
	"testing"
)

func TestComputeOfflineMatchesStreamedFrames(t *testing.T) {
	opts := DefaultOptions()
	samples := sineWave(int(opts.SampleRateIn), 150, opts.SampleRateIn)

	oneShot, err := ComputeOffline(opts, samples)
	if err != nil {
		t.Fatalf("ComputeOffline (one shot): %v", err)
	}
	if len(oneShot) == 0 {
		t.Fatalf("expected at least one frame")
	}

	opts.FramesPerChunk = 5
	chunked, err := ComputeOffline(opts, samples)
	if err != nil {
		t.Fatalf("ComputeOffline (chunked): %v", err)
	}

	n := len(oneShot)
	if len(chunked) < n {
		n = len(chunked)
	}
	for i := 0; i < n; i++ {
		if math.Abs(oneShot[i][0]-chunked[i][0]) > 1e-6 || math.Abs(oneShot[i][1]-chunked[i][1]) > 1e-6 {
			t.Fatalf("frame %d differs between one-shot and chunked: %v vs %v", i, oneShot[i], chunked[i])
		}
	}
}

func TestComputeOfflineRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.MinF0 = 0
	if _, err := ComputeOffline(opts, []float64{0, 0, 0}); err == nil {
		t.Fatalf("expected a validation error")
	}
}
