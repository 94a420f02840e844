package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-tsm/internal/pipeline"
)

// speedMark records the speed in effect from an absolute input frame onward.
type speedMark struct {
	frame int64
	speed float64
}

// Stream is a streaming time-scale modifier bound to one sample rate and
// channel count. Samples are interleaved 16-bit frames.
//
// A speed set with SetSpeed applies to frames written after the call; frames
// already written keep the speed they were written under, even if they have
// not been processed yet.
//
// Stream is not safe for concurrent use.
type Stream struct {
	cfg         Config
	channels    int
	minPeriod   int
	maxPeriod   int
	maxRequired int

	// input holds unconsumed interleaved frames; input[0] is absolute frame inputBase.
	input     []int16
	inputBase int64
	pos       int
	written   int64

	marks  []speedMark
	output *pipeline.RingBuffer[int16]

	downmix []float64
	scratch []int16

	// carry is the fractional output frame owed by previous period operations.
	carry      float64
	lastPeriod int

	// pendingPeriod is the period found at pos for an operation still waiting
	// for input; zero when none. searches counts period searches run.
	pendingPeriod int
	searches      int

	flushed bool
	closed  bool
}

// NewStream creates a stream. The initial speed is 1.0.
func NewStream(config Config) (*Stream, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := config.withDefaults()
	minPeriod, maxPeriod := cfg.periods()
	maxRequired := windowPeriods * maxPeriod

	return &Stream{
		cfg:         cfg,
		channels:    cfg.Channels,
		minPeriod:   minPeriod,
		maxPeriod:   maxPeriod,
		maxRequired: maxRequired,
		marks:       []speedMark{{frame: 0, speed: 1}},
		output:      pipeline.NewRingBuffer[int16](defaultOutputCapacity * cfg.Channels),
		downmix:     make([]float64, maxRequired),
		scratch:     make([]int16, maxPeriod*cfg.Channels),
	}, nil
}

// SampleRate returns the stream sample rate in Hz.
func (s *Stream) SampleRate() int { return s.cfg.SampleRate }

// Channels returns the number of interleaved channels.
func (s *Stream) Channels() int { return s.channels }

// Speed returns the speed that applies to the next written frame.
func (s *Stream) Speed() float64 { return s.marks[len(s.marks)-1].speed }

// Available returns the number of produced frames waiting to be read.
func (s *Stream) Available() int { return s.output.Available() / s.channels }

// SetSpeed sets the speed for subsequently written frames.
// Values above 1 shorten the audio, values below 1 lengthen it.
func (s *Stream) SetSpeed(speed float64) error {
	if s.closed {
		return ErrStreamClosed
	}
	if err := validateSpeed(speed); err != nil {
		return err
	}

	last := &s.marks[len(s.marks)-1]
	if last.frame == s.written {
		last.speed = speed
		return nil
	}
	s.marks = append(s.marks, speedMark{frame: s.written, speed: speed})
	return nil
}

// Write queues interleaved samples and processes as much input as the period
// search window allows.
func (s *Stream) Write(samples []int16) error {
	if s.closed {
		return ErrStreamClosed
	}
	if s.flushed {
		return ErrStreamFlushed
	}
	if len(samples)%s.channels != 0 {
		return fmt.Errorf("%w: %d samples is not a multiple of %d channels",
			ErrPartialFrame, len(samples), s.channels)
	}
	if len(samples) == 0 {
		return nil
	}

	s.input = append(s.input, samples...)
	s.written += int64(len(samples) / s.channels)
	s.process()
	s.compact()
	return nil
}

// Read moves up to len(dst)/channels produced frames into dst and returns the
// number of frames moved. Zero means no output is ready yet.
func (s *Stream) Read(dst []int16) int {
	if s.closed {
		return 0
	}
	whole := len(dst) - len(dst)%s.channels
	return s.output.ReadInto(dst[:whole]) / s.channels
}

// Flush signals the end of input and converts everything still buffered into
// output. Subsequent reads drain the remaining frames.
func (s *Stream) Flush() error {
	if s.closed {
		return ErrStreamClosed
	}
	if s.flushed {
		return nil
	}
	s.flushed = true

	s.process()
	s.emitTail()
	s.compact()
	return nil
}

// Close releases the stream buffers. It is safe to call more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.input = nil
	s.downmix = nil
	s.scratch = nil
	s.output.Clear()
	return nil
}

// availableFrames returns the number of buffered input frames.
func (s *Stream) availableFrames() int {
	return len(s.input) / s.channels
}

// speedAt returns the speed for an absolute input frame and the absolute frame
// of the next speed change after it, or -1 when there is none.
func (s *Stream) speedAt(frame int64) (speed float64, next int64) {
	speed = s.marks[0].speed
	next = -1
	for _, m := range s.marks {
		if m.frame <= frame {
			speed = m.speed
			continue
		}
		next = m.frame
		break
	}
	return speed, next
}

// process runs period operations until the buffered input is too short for
// another complete one. An operation either runs to completion or not at all,
// so output does not depend on how input was split across writes.
func (s *Stream) process() {
	for {
		avail := s.availableFrames()

		speed, next := s.speedAt(s.inputBase + int64(s.pos))
		if speed == 1 {
			end := avail
			if next >= 0 {
				end = min(avail, int(next-s.inputBase))
			}
			s.emitCopy(s.pos, end)
			s.pos = end
			if end == avail {
				return
			}
			continue
		}

		if avail-s.pos < s.maxRequired {
			return
		}

		period := s.pendingPeriod
		if period == 0 {
			period = s.findPeriod(s.pos)
		}
		var done bool
		if speed > 1 {
			done = s.skipPeriod(period, speed, avail)
		} else {
			done = s.insertPeriod(period, speed, avail)
		}
		if !done {
			s.pendingPeriod = period
			return
		}
		s.pendingPeriod = 0
	}
}

// skipPeriod drops one pitch period. It emits period/(speed-1) frames whose
// first part crossfades from the current period into the next one, and
// consumes period more input frames than it emits. It reports false, changing
// nothing, when the buffered input does not cover the operation.
func (s *Stream) skipPeriod(period int, speed float64, avail int) bool {
	target := float64(period)/(speed-1) + s.carry
	n := int(target)
	if avail-s.pos < period+n {
		return false
	}
	s.carry = target - float64(n)
	s.lastPeriod = period

	fade := min(n, period)
	s.crossfade(s.pos, s.pos+period, fade)
	s.emitCopy(s.pos+period+fade, s.pos+period+n)
	s.pos += period + n
	return true
}

// insertPeriod repeats one pitch period. It emits the period unchanged, then
// crossfades from the following period back into the current one, and emits
// period more frames than it consumes.
func (s *Stream) insertPeriod(period int, speed float64, avail int) bool {
	target := speed*float64(period)/(1-speed) + s.carry
	n := int(target)
	if avail-s.pos < max(n, 2*period) {
		return false
	}
	s.carry = target - float64(n)
	s.lastPeriod = period

	fade := min(n, period)
	s.emitCopy(s.pos, s.pos+period)
	s.crossfade(s.pos+period, s.pos, fade)
	s.emitCopy(s.pos+fade, s.pos+n)
	s.pos += n
	return true
}

// emitTail converts the input left after the last period decision into
// round(remaining/speed) frames: truncated when speeding up, extended by
// repeating its last pitch period when slowing down.
func (s *Stream) emitTail() {
	avail := s.availableFrames()
	remaining := avail - s.pos
	s.pendingPeriod = 0
	if remaining <= 0 {
		return
	}

	speed, _ := s.speedAt(s.inputBase + int64(s.pos))
	n := int(math.Floor(float64(remaining)/speed + s.carry + 0.5))
	s.carry = 0

	if n <= remaining {
		s.emitCopy(s.pos, s.pos+n)
		s.pos = avail
		return
	}

	s.emitCopy(s.pos, avail)
	period := s.lastPeriod
	if period <= 0 || period > remaining {
		period = remaining
	}
	start := avail - period
	for extra := n - remaining; extra > 0; {
		k := min(extra, period)
		s.emitCopy(start, start+k)
		extra -= k
	}
	s.pos = avail
}

// compact drops consumed input frames.
func (s *Stream) compact() {
	if s.pos == 0 {
		return
	}
	consumed := s.pos * s.channels
	n := copy(s.input, s.input[consumed:])
	s.input = s.input[:n]
	s.inputBase += int64(s.pos)
	s.pos = 0
}
