package resample

import (
	"math"
	"testing"
)

func sineWave(n int, freq, rate float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / rate)
	}
	return out
}

func TestLinearResampleChunkInvariance(t *testing.T) {
	const inputRate = 16000
	const outputRate = 4000
	samples := sineWave(8000, 200, inputRate)

	full := NewLinearResample(inputRate, outputRate, 1000, 7)
	var wantOut []float64
	full.Resample(samples, true, &wantOut)

	chunked := NewLinearResample(inputRate, outputRate, 1000, 7)
	var gotOut []float64
	chunkSize := 37
	for i := 0; i < len(samples); i += chunkSize {
		end := i + chunkSize
		if end > len(samples) {
			end = len(samples)
		}
		chunked.Resample(samples[i:end], false, &gotOut)
	}
	chunked.Resample(nil, true, &gotOut)

	if len(gotOut) != len(wantOut) {
		t.Fatalf("chunked output length %d, want %d", len(gotOut), len(wantOut))
	}
	for i := range wantOut {
		if math.Abs(gotOut[i]-wantOut[i]) > 1e-9 {
			t.Fatalf("sample %d diverges: got %v want %v", i, gotOut[i], wantOut[i])
		}
	}
}

func TestLinearResampleDownsamplesTone(t *testing.T) {
	const inputRate = 16000
	const outputRate = 4000
	samples := sineWave(16000, 200, inputRate)

	r := NewLinearResample(inputRate, outputRate, 1000, 7)
	var out []float64
	r.Resample(samples, true, &out)

	wantLen := len(samples) * outputRate / inputRate
	if out == nil || len(out) < wantLen-2 || len(out) > wantLen+2 {
		t.Fatalf("output length %d, want near %d", len(out), wantLen)
	}

	// Check steady-state amplitude stays close to the input sine's unit
	// amplitude once filter transients have decayed.
	maxAbs := 0.0
	for _, v := range out[len(out)/2:] {
		if math.Abs(v) > maxAbs {
			maxAbs = math.Abs(v)
		}
	}
	if maxAbs < 0.5 || maxAbs > 1.2 {
		t.Fatalf("unexpected steady-state amplitude %v", maxAbs)
	}
}
