package tsm

import (
	"errors"

	"github.com/tphakala/go-audio-tsm/internal/engine"
)

// Stream is one time-scale modification session bound to a fixed sample rate
// and channel count. Samples are interleaved signed 16-bit frames.
type Stream interface {
	// SetSpeed changes the speed for samples written after the call.
	SetSpeed(speed float64) error

	// Write queues interleaved samples. The length must be a whole number of frames.
	Write(samples []int16) error

	// Read moves up to len(dst)/channels produced frames into dst and returns
	// the number of frames moved. Zero means no output is ready yet.
	Read(dst []int16) int

	// Flush signals the end of input. Subsequent reads drain the remaining
	// output until they return zero.
	Flush() error

	// Close releases the session. It is safe to call more than once.
	Close() error
}

// Engine opens stream sessions.
type Engine interface {
	Open(sampleRate, channels int) (Stream, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(sampleRate, channels int) (Stream, error)

// Open calls f.
func (f EngineFunc) Open(sampleRate, channels int) (Stream, error) {
	return f(sampleRate, channels)
}

// Errors returned by the harness.
var (
	// ErrInvalidWaveform indicates a waveform with bad rate, channels or length.
	ErrInvalidWaveform = errors.New("invalid waveform")

	// ErrInvalidSchedule indicates a speed schedule that does not cover the input.
	ErrInvalidSchedule = errors.New("invalid speed schedule")

	// ErrInvalidSpeed indicates a non-positive or non-finite speed factor.
	ErrInvalidSpeed = errors.New("invalid speed")

	// ErrEngineCallFailed indicates an engine open, write or flush failure.
	ErrEngineCallFailed = errors.New("engine call failed")

	// ErrFlushFailed indicates the engine rejected the end-of-input flush.
	ErrFlushFailed = errors.New("flush failed")
)

// NewEngine returns the bundled pitch-synchronous overlap-add engine with
// pitch search bounded to [minPitchHz, maxPitchHz]. Zero bounds select the
// defaults.
func NewEngine(minPitchHz, maxPitchHz float64) Engine {
	return EngineFunc(func(sampleRate, channels int) (Stream, error) {
		return engine.NewStream(engine.Config{
			SampleRate: sampleRate,
			Channels:   channels,
			MinPitchHz: minPitchHz,
			MaxPitchHz: maxPitchHz,
		})
	})
}

// DefaultEngine returns the bundled engine with the default pitch range.
func DefaultEngine() Engine {
	return NewEngine(0, 0)
}
