// Package tsm verifies streaming audio time-scale modification engines.
//
// A time-scale modification (TSM) engine changes the playback duration of
// audio without changing its pitch. This package drives any engine that
// satisfies the [Engine] contract through a chunked write, read, flush and
// drain protocol and returns the assembled output, so callers can judge its
// length, pitch stability and channel handling.
//
// # Features
//
//   - Engine contract of five stream operations, substitutable in tests
//   - Chunked streaming harness tolerant of arbitrarily fragmented output
//   - Piecewise speed schedules applied to contiguous input segments
//   - Bundled pitch-synchronous overlap-add engine for 16-bit PCM
//   - Multi-channel support with interleaved frames
//
// # Quick Start
//
// For a one-shot compression at a constant speed:
//
//	out, err := tsm.Compress(tsm.DefaultEngine(), in, 2.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For a speed schedule and custom chunking:
//
//	h := tsm.NewHarness(tsm.DefaultEngine(), tsm.WithChunkFrames(512))
//	out, err := h.Compress(in, tsm.SplitEvenly(in.Frames(), 3, 1.5, 3))
//
// # Acceptance Scenarios
//
// The scenario suite in internal/scenario and the tsmverify command run the
// steady tone, chirp, noise, recorded speech and mono/stereo equivalence
// checks against an engine.
package tsm
