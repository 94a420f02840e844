package engine

import "math"

// findPeriod estimates the pitch period at input frame pos by average
// magnitude difference on the channel downmix. For each candidate period T it
// averages |d[i]-d[i+T]| over one candidate period; the smallest average wins
// and ties go to the shorter period.
func (s *Stream) findPeriod(pos int) int {
	s.searches++
	d := s.fillDownmix(pos)

	best := s.minPeriod
	bestDiff := math.Inf(1)
	for period := s.minPeriod; period <= s.maxPeriod; period++ {
		diff := amdf(d, period) / float64(period)
		if diff < bestDiff {
			bestDiff = diff
			best = period
		}
	}
	return best
}

// fillDownmix averages the channels of maxRequired frames starting at pos.
// Averaging keeps a stereo stream with identical channels bit-for-bit
// equivalent to its mono source.
func (s *Stream) fillDownmix(pos int) []float64 {
	d := s.downmix[:s.maxRequired]
	ch := s.channels
	base := pos * ch

	if ch == 1 {
		for i := range d {
			d[i] = float64(s.input[base+i])
		}
		return d
	}

	for i := range d {
		var sum float64
		frame := s.input[base+i*ch : base+(i+1)*ch]
		for _, v := range frame {
			sum += float64(v)
		}
		d[i] = sum / float64(ch)
	}
	return d
}

// amdf sums |d[i]-d[i+period]| over the first period samples of d.
func amdf(d []float64, period int) float64 {
	var diff float64
	for i := range period {
		diff += math.Abs(d[i] - d[i+period])
	}
	return diff
}
