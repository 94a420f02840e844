package tsm

import (
	"fmt"
	"math"
	"time"
)

// Waveform is interleaved signed 16-bit audio.
type Waveform struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// Frames returns the number of frames.
func (w Waveform) Frames() int {
	if w.Channels <= 0 {
		return 0
	}
	return len(w.Samples) / w.Channels
}

// Duration returns the playback duration.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(w.Frames()) * time.Second / time.Duration(w.SampleRate)
}

// Validate checks rate, channel count and frame alignment.
func (w Waveform) Validate() error {
	if w.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidWaveform, w.SampleRate)
	}
	if w.Channels < 1 || w.Channels > maxChannels {
		return fmt.Errorf("%w: channels must be in [1, %d], got %d", ErrInvalidWaveform, maxChannels, w.Channels)
	}
	if len(w.Samples)%w.Channels != 0 {
		return fmt.Errorf("%w: %d samples is not a multiple of %d channels",
			ErrInvalidWaveform, len(w.Samples), w.Channels)
	}
	return nil
}

// Channel returns a copy of one channel.
func (w Waveform) Channel(ch int) []int16 {
	if ch < 0 || ch >= w.Channels {
		return nil
	}
	out := make([]int16, w.Frames())
	for i := range out {
		out[i] = w.Samples[i*w.Channels+ch]
	}
	return out
}

// DuplicateToStereo copies a mono waveform into both channels of a stereo one.
func DuplicateToStereo(mono Waveform) (Waveform, error) {
	if err := mono.Validate(); err != nil {
		return Waveform{}, err
	}
	if mono.Channels != 1 {
		return Waveform{}, fmt.Errorf("%w: expected mono input, got %d channels", ErrInvalidWaveform, mono.Channels)
	}

	out := make([]int16, len(mono.Samples)*stereoChannels)
	for i, v := range mono.Samples {
		out[i*stereoChannels] = v
		out[i*stereoChannels+1] = v
	}
	return Waveform{Samples: out, SampleRate: mono.SampleRate, Channels: stereoChannels}, nil
}

// Segment is a run of input frames processed at one speed.
type Segment struct {
	Frames int
	Speed  float64
}

// Schedule is an ordered list of contiguous segments covering the whole input.
type Schedule []Segment

// ConstantSchedule covers frames input frames at a single speed.
func ConstantSchedule(frames int, speed float64) Schedule {
	return Schedule{{Frames: frames, Speed: speed}}
}

// SplitEvenly divides frames into len(speeds) equal segments; the last one
// absorbs the remainder.
func SplitEvenly(frames int, speeds ...float64) Schedule {
	if len(speeds) == 0 {
		return nil
	}
	part := frames / len(speeds)
	s := make(Schedule, len(speeds))
	for i, speed := range speeds {
		s[i] = Segment{Frames: part, Speed: speed}
	}
	s[len(s)-1].Frames = frames - part*(len(speeds)-1)
	return s
}

// TotalFrames returns the number of input frames the schedule covers.
func (s Schedule) TotalFrames() int {
	total := 0
	for _, seg := range s {
		total += seg.Frames
	}
	return total
}

// ExpectedFrames returns the theoretical output length, the sum of
// frames/speed over all segments.
func (s Schedule) ExpectedFrames() float64 {
	var total float64
	for _, seg := range s {
		total += float64(seg.Frames) / seg.Speed
	}
	return total
}

// Validate checks that the schedule covers exactly totalFrames with valid speeds.
func (s Schedule) Validate(totalFrames int) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no segments", ErrInvalidSchedule)
	}
	for i, seg := range s {
		if seg.Frames < 0 {
			return fmt.Errorf("%w: segment %d has negative length %d", ErrInvalidSchedule, i, seg.Frames)
		}
		if err := validateSpeed(seg.Speed); err != nil {
			return fmt.Errorf("%w: segment %d: %w", ErrInvalidSchedule, i, err)
		}
	}
	if got := s.TotalFrames(); got != totalFrames {
		return fmt.Errorf("%w: segments cover %d frames, input has %d", ErrInvalidSchedule, got, totalFrames)
	}
	return nil
}

func validateSpeed(speed float64) error {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, speed)
	}
	return nil
}
