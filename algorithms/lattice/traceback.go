package lattice

// LagNccfEntry is one finalized (lag, pov_nccf) emission.
type LagNccfEntry struct {
	LagIndex int
	PovNccf  float64
}

// SetBestState walks back from frame, which owns the current best state,
// setting CurBestState on every ancestor and writing the corresponding
// (lag, pov_nccf) pair into lagNccf at frameIndex, frameIndex-1, and so
// on. It stops as soon as it reaches a frame whose CurBestState already
// equals the state being propagated: every further ancestor already
// agrees, by induction, so revisiting them is redundant. This is an
// explicit loop over the Prev chain rather than recursion, since the
// chain length is bounded only by stream length.
func SetBestState(frame *FrameInfo, state int, frameIndex int, lagNccf []LagNccfEntry) {
	for frame != nil {
		if frame.CurBestState == state {
			return
		}
		frame.CurBestState = state
		if frameIndex >= 0 && frameIndex < len(lagNccf) {
			lagNccf[frameIndex] = LagNccfEntry{LagIndex: state, PovNccf: frame.PovNccf[state]}
		}
		if frame.Prev == nil {
			return
		}
		next := frame.Backpointer[state]
		frame = frame.Prev
		state = next
		frameIndex--
	}
}

// ComputeLatency walks back from frame tracking the backpointer images of
// two sentinel states (the lowest and highest lag indices), replacing
// each with its own backpointer at every step. Once the two images
// coincide, every state's optimal history back of that point is
// unambiguous regardless of which state the stream eventually settles on
// as "the" best, so the number of frames traversed to reach that point is
// the latency: frames strictly more recent than it may still change. The
// result is the minimum of that latency and maxFramesLatency; a
// non-positive maxFramesLatency means no frame is ever held back.
func ComputeLatency(frame *FrameInfo, numStates, maxFramesLatency int) int {
	if maxFramesLatency <= 0 {
		return 0
	}
	if frame == nil || numStates == 0 {
		return 0
	}
	minLiving, maxLiving := 0, numStates-1
	latency := 0
	cur := frame
	for cur.Prev != nil && minLiving != maxLiving {
		minLiving = cur.Backpointer[minLiving]
		maxLiving = cur.Backpointer[maxLiving]
		latency++
		cur = cur.Prev
		if latency >= maxFramesLatency {
			break
		}
	}
	return latency
}
