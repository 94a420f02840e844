package engine

import "math"

// emitCopy queues input frames [from, to) unchanged.
func (s *Stream) emitCopy(from, to int) {
	if to <= from {
		return
	}
	s.output.Write(s.input[from*s.channels : to*s.channels])
}

// crossfade queues length frames that ramp linearly from the frames at
// fadeOut to the frames at fadeIn. Frame k is ((L-k)*a + k*b) / L rounded
// half away from zero.
func (s *Stream) crossfade(fadeOut, fadeIn, length int) {
	if length <= 0 {
		return
	}

	ch := s.channels
	out := s.scratch
	if cap(out) < length*ch {
		out = make([]int16, length*ch)
		s.scratch = out
	}
	out = out[:length*ch]

	a := s.input[fadeOut*ch : (fadeOut+length)*ch]
	b := s.input[fadeIn*ch : (fadeIn+length)*ch]
	l := float64(length)
	for k := range length {
		wOut := float64(length - k)
		wIn := float64(k)
		for c := range ch {
			i := k*ch + c
			out[i] = clampInt16(math.Round((wOut*float64(a[i]) + wIn*float64(b[i])) / l))
		}
	}
	s.output.Write(out)
}

// clampInt16 saturates v to the int16 range.
func clampInt16(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
