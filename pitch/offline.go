package pitch

// ComputeOffline runs a whole waveform through a fresh Stream in one
// shot, chunking it per opts.FramesPerChunk (0 means feed it all at
// once), and returns every finalized (pov_nccf, pitch_hz) pair.
func ComputeOffline(opts Options, samples []float64) ([][2]float64, error) {
	s, err := NewStream(opts)
	if err != nil {
		return nil, err
	}

	if opts.FramesPerChunk <= 0 {
		if err := s.AcceptWaveform(opts.SampleRateIn, samples); err != nil {
			return nil, err
		}
	} else {
		chunkSamples := int(float64(opts.FramesPerChunk) * opts.FrameShiftMs / 1000 * opts.SampleRateIn)
		if chunkSamples <= 0 {
			chunkSamples = len(samples)
			if chunkSamples == 0 {
				chunkSamples = 1
			}
		}
		for i := 0; i < len(samples); i += chunkSamples {
			end := i + chunkSamples
			if end > len(samples) {
				end = len(samples)
			}
			if err := s.AcceptWaveform(opts.SampleRateIn, samples[i:end]); err != nil {
				return nil, err
			}
		}
	}

	if err := s.InputFinished(); err != nil {
		return nil, err
	}

	n := s.NumFramesReady()
	out := make([][2]float64, n)
	frame := make([]float64, 2)
	for t := 0; t < n; t++ {
		if err := s.GetFrame(t, frame); err != nil {
			return nil, err
		}
		out[t] = [2]float64{frame[0], frame[1]}
	}
	return out, nil
}
