package lattice

import "testing"

func TestNewRootFrame(t *testing.T) {
	root := NewRootFrame(5)
	if root.Prev != nil {
		t.Fatalf("root frame must have a nil Prev")
	}
	if root.CurBestState != -1 {
		t.Fatalf("root frame CurBestState = %d, want -1", root.CurBestState)
	}
	for i, bp := range root.Backpointer {
		if bp != -1 {
			t.Fatalf("root backpointer[%d] = %d, want -1", i, bp)
		}
	}
	if len(root.PovNccf) != 5 {
		t.Fatalf("len(PovNccf) = %d, want 5", len(root.PovNccf))
	}
}

func TestNewFrameChainsToPrev(t *testing.T) {
	root := NewRootFrame(3)
	f := NewFrame(3, root)
	if f.Prev != root {
		t.Fatalf("new frame does not chain to its prev")
	}
	if len(f.Backpointer) != 3 || len(f.PovNccf) != 3 {
		t.Fatalf("new frame has wrong state width")
	}
}

func TestCleanupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Cleanup to panic")
		}
	}()
	Cleanup()
}

func TestComputeLocalCostFavorsHighCorrelation(t *testing.T) {
	lags := []float64{0.005, 0.01}
	nccf := []float64{0.9, 0.1}
	cost := ComputeLocalCost(nccf, lags, 10)
	if !(cost[0] < cost[1]) {
		t.Fatalf("expected higher-correlation state to have lower cost: %v", cost)
	}
}

func TestTransitionCoefficientAndCost(t *testing.T) {
	coeff := transitionCoefficient(0.01, 0.1)
	if coeff <= 0 {
		t.Fatalf("transitionCoefficient = %v, want > 0", coeff)
	}
	if transitionCost(3, 3, coeff) != 0 {
		t.Fatalf("transitionCost(i,i) should be 0")
	}
	if transitionCost(1, 5, coeff) <= transitionCost(1, 2, coeff) {
		t.Fatalf("transitionCost should grow with |j-i|")
	}
}

func TestStepRenormalizesToZeroMinimum(t *testing.T) {
	prev := []float32{0, 0, 0, 0, 0}
	local := []float64{0.5, 0.1, 0.9, 0.3, 0.2}
	forward, backpointer, remainder := Step(prev, local, 0.01, 0.1, true)
	if len(backpointer) != len(prev) {
		t.Fatalf("backpointer length mismatch")
	}
	minV := forward[0]
	for _, v := range forward {
		if v < minV {
			minV = v
		}
	}
	if minV != 0 {
		t.Fatalf("Step did not renormalize forward costs to a zero minimum, min=%v", minV)
	}
	if remainder <= 0 {
		t.Fatalf("expected a positive discarded remainder, got %v", remainder)
	}
}

func TestStepNaiveAndBoundedAgree(t *testing.T) {
	prev := []float32{0.3, 0.1, 0.4, 0.0, 0.2, 0.6, 0.05}
	local := []float64{0.2, 0.3, 0.1, 0.4, 0.0, 0.5, 0.3}
	fNaive, bpNaive, rNaive := Step(prev, local, 0.02, 0.2, true)
	fBounded, bpBounded, rBounded := Step(prev, local, 0.02, 0.2, false)
	for i := range bpNaive {
		if bpNaive[i] != bpBounded[i] {
			t.Fatalf("backpointer[%d]: naive=%d bounded=%d", i, bpNaive[i], bpBounded[i])
		}
		if fNaive[i] != fBounded[i] {
			t.Fatalf("forward[%d]: naive=%v bounded=%v", i, fNaive[i], fBounded[i])
		}
	}
	if rNaive != rBounded {
		t.Fatalf("remainder: naive=%v bounded=%v", rNaive, rBounded)
	}
}
