// Package engine implements a streaming pitch-synchronous overlap-add
// time-scale modification stream for interleaved 16-bit audio.
//
// The stream changes duration without changing pitch: for speed-up it drops
// whole pitch periods and for slow-down it repeats them, crossfading across
// each splice so the waveform stays continuous.
package engine

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the stream.
var (
	// ErrInvalidConfig indicates invalid stream configuration.
	ErrInvalidConfig = errors.New("invalid stream configuration")

	// ErrInvalidSpeed indicates a speed factor outside the supported range.
	ErrInvalidSpeed = errors.New("invalid speed")

	// ErrPartialFrame indicates a write whose length is not a whole number of frames.
	ErrPartialFrame = errors.New("partial frame")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrStreamFlushed indicates a write after the end of input was signalled.
	ErrStreamFlushed = errors.New("stream already flushed")
)

// Config holds stream configuration.
type Config struct {
	// SampleRate is the input and output sample rate in Hz.
	SampleRate int

	// Channels is the number of interleaved channels.
	Channels int

	// MinPitchHz and MaxPitchHz bound the pitch period search.
	// Zero values select 65 Hz and 400 Hz.
	MinPitchHz float64
	MaxPitchHz float64
}

// DefaultConfig returns a configuration with the default pitch range.
func DefaultConfig(sampleRate, channels int) Config {
	return Config{
		SampleRate: sampleRate,
		Channels:   channels,
		MinPitchHz: defaultMinPitchHz,
		MaxPitchHz: defaultMaxPitchHz,
	}
}

// withDefaults fills zero pitch bounds.
func (c Config) withDefaults() Config {
	if c.MinPitchHz == 0 {
		c.MinPitchHz = defaultMinPitchHz
	}
	if c.MaxPitchHz == 0 {
		c.MaxPitchHz = defaultMaxPitchHz
	}
	return c
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	cfg := c.withDefaults()
	if cfg.MinPitchHz <= 0 || cfg.MaxPitchHz <= cfg.MinPitchHz {
		return fmt.Errorf("%w: pitch range must satisfy 0 < min < max, got [%v, %v]",
			ErrInvalidConfig, cfg.MinPitchHz, cfg.MaxPitchHz)
	}

	minPeriod, maxPeriod := cfg.periods()
	if minPeriod < 1 || maxPeriod <= minPeriod {
		return fmt.Errorf("%w: sample rate %d too low for pitch range [%v, %v]",
			ErrInvalidConfig, c.SampleRate, cfg.MinPitchHz, cfg.MaxPitchHz)
	}

	return nil
}

// periods returns the shortest and longest pitch period in frames.
func (c Config) periods() (minPeriod, maxPeriod int) {
	minPeriod = int(float64(c.SampleRate) / c.MaxPitchHz)
	maxPeriod = int(float64(c.SampleRate) / c.MinPitchHz)
	return minPeriod, maxPeriod
}

// validateSpeed checks a time-scale factor.
func validateSpeed(speed float64) error {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < minSpeed || speed > maxSpeed {
		return fmt.Errorf("%w: %v outside [%v, %v]", ErrInvalidSpeed, speed, minSpeed, maxSpeed)
	}
	return nil
}
