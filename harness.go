package tsm

import (
	"fmt"
	"log/slog"
)

// Harness drives an Engine through the chunked write, read, flush and drain
// protocol and assembles the full output.
type Harness struct {
	engine      Engine
	chunkFrames int
	logger      *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithChunkFrames sets the number of frames per write and per read call.
// Non-positive values are ignored.
func WithChunkFrames(frames int) Option {
	return func(h *Harness) {
		if frames > 0 {
			h.chunkFrames = frames
		}
	}
}

// WithLogger sets the logger for per-compression debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHarness creates a harness around e.
func NewHarness(e Engine, opts ...Option) *Harness {
	h := &Harness{
		engine:      e,
		chunkFrames: DefaultChunkFrames,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ChunkFrames returns the configured chunk size in frames.
func (h *Harness) ChunkFrames() int { return h.chunkFrames }

// compressStats counts engine calls for the debug record.
type compressStats struct {
	writes     int
	reads      int
	drainReads int
}

// Compress runs in through one engine session following schedule and returns
// everything the session produced. The session is closed on every path.
func (h *Harness) Compress(in Waveform, schedule Schedule) (out Waveform, err error) {
	if err := in.Validate(); err != nil {
		return Waveform{}, err
	}
	if err := schedule.Validate(in.Frames()); err != nil {
		return Waveform{}, err
	}

	stream, err := h.engine.Open(in.SampleRate, in.Channels)
	if err != nil {
		return Waveform{}, fmt.Errorf("%w: open %d Hz x %d: %w", ErrEngineCallFailed, in.SampleRate, in.Channels, err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close: %w", ErrEngineCallFailed, cerr)
		}
	}()

	ch := in.Channels
	chunk := make([]int16, h.chunkFrames*ch)
	// Capacity follows the input, not the schedule estimate, which is
	// unbounded for very small speeds. Slow-downs grow the slice.
	output := make([]int16, 0, len(in.Samples)+len(chunk))
	var stats compressStats

	read := func() (int, error) {
		n := stream.Read(chunk)
		if n < 0 || n > h.chunkFrames {
			return 0, fmt.Errorf("%w: read returned %d frames for a %d-frame buffer",
				ErrEngineCallFailed, n, h.chunkFrames)
		}
		output = append(output, chunk[:n*ch]...)
		return n, nil
	}

	start := 0
	for i, seg := range schedule {
		if err := stream.SetSpeed(seg.Speed); err != nil {
			return Waveform{}, fmt.Errorf("%w: set speed %v for segment %d: %w", ErrEngineCallFailed, seg.Speed, i, err)
		}

		end := start + seg.Frames
		for pos := start; pos < end; pos += h.chunkFrames {
			frames := min(h.chunkFrames, end-pos)
			if err := stream.Write(in.Samples[pos*ch : (pos+frames)*ch]); err != nil {
				return Waveform{}, fmt.Errorf("%w: write %d frames at frame %d: %w", ErrEngineCallFailed, frames, pos, err)
			}
			stats.writes++

			if _, err := read(); err != nil {
				return Waveform{}, err
			}
			stats.reads++
		}
		start = end
	}

	if err := stream.Flush(); err != nil {
		return Waveform{}, fmt.Errorf("%w: %w: %w", ErrFlushFailed, ErrEngineCallFailed, err)
	}

	for {
		n, err := read()
		if err != nil {
			return Waveform{}, err
		}
		stats.reads++
		if n == 0 {
			break
		}
		stats.drainReads++
	}

	out = Waveform{Samples: output, SampleRate: in.SampleRate, Channels: ch}
	h.logger.Debug("compressed waveform",
		"sample_rate", in.SampleRate,
		"channels", ch,
		"segments", len(schedule),
		"input_frames", in.Frames(),
		"output_frames", out.Frames(),
		"expected_frames", schedule.ExpectedFrames(),
		"writes", stats.writes,
		"reads", stats.reads,
		"drain_reads", stats.drainReads)

	return out, nil
}

// Compress runs in through e at a single speed with default harness settings.
func Compress(e Engine, in Waveform, speed float64) (Waveform, error) {
	return NewHarness(e).Compress(in, ConstantSchedule(in.Frames(), speed))
}

