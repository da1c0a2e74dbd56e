package nccf

import (
	"math"
	"testing"
)

func TestNccfToPovFeatureRange(t *testing.T) {
	// F(x) <= 0 holds for x >= 0.0001; below that the 1.0001 offset makes F
	// positive (F(-1) is about 0.11).
	for x := 0.0001; x <= 1.0; x += 0.05 {
		f := NccfToPovFeature(x)
		if f > 1e-9 {
			t.Fatalf("NccfToPovFeature(%v) = %v, want <= 0", x, f)
		}
	}
	// Monotone non-increasing over [-1, 1].
	prev := NccfToPovFeature(-1.0)
	for x := -0.95; x <= 1.0; x += 0.05 {
		cur := NccfToPovFeature(x)
		if cur > prev+1e-9 {
			t.Fatalf("NccfToPovFeature not monotone non-increasing at x=%v: prev=%v cur=%v", x, prev, cur)
		}
		prev = cur
	}
}

func TestNccfToPovBounds(t *testing.T) {
	for _, n := range []float64{-1.5, -1.0, -0.5, 0, 0.5, 1.0, 1.5} {
		p := NccfToPov(n)
		if p < 0 || p > 1 {
			t.Fatalf("NccfToPov(%v) = %v, out of [0,1]", n, p)
		}
	}
}

func TestSelectLagsStrictlyIncreasing(t *testing.T) {
	lags := SelectLags(50, 400, 0.005)
	if len(lags) < 2 {
		t.Fatalf("expected multiple lags, got %d", len(lags))
	}
	for i := 1; i < len(lags); i++ {
		if lags[i] <= lags[i-1] {
			t.Fatalf("lags not strictly increasing at %d: %v <= %v", i, lags[i], lags[i-1])
		}
	}
	wantMin := 1.0 / 400
	if math.Abs(lags[0]-wantMin) > 1e-9 {
		t.Fatalf("first lag = %v, want %v", lags[0], wantMin)
	}
}

func TestComputeCorrelationZeroSignalGivesZeroNumerator(t *testing.T) {
	w := make([]float64, 50)
	inner, norm := ComputeCorrelation(w, 20, 0, 10)
	for i := range inner {
		if inner[i] != 0 || norm[i] != 0 {
			t.Fatalf("lag %d: inner=%v norm=%v, want both 0 for all-zero input", i, inner[i], norm[i])
		}
	}
	out := ComputeNccf(inner, norm, 0)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("lag %d: nccf=%v, want 0 when denominator is 0", i, v)
		}
	}
}
