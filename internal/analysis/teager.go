// Package analysis judges time-scale modified audio. It computes the Teager
// energy operator x[n]^2 - x[n-1]*x[n+1], which is constant over a pure
// sinusoid and grows with the square of its frequency, plus the statistics and
// spectra derived from it.
package analysis

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-tsm/internal/mathutil"
	"github.com/tphakala/go-audio-tsm/internal/simdops"
)

// teagerAt evaluates the operator at interior index n in float64 so 16-bit
// products never wrap.
func teagerAt(x []int16, n int) float64 {
	c := float64(x[n])
	return c*c - float64(x[n-1])*float64(x[n+1])
}

// TeagerTrace returns the operator for every interior sample of x. Element i
// corresponds to source index i+1, so the trace is two shorter than x.
func TeagerTrace(x []int16) ([]float64, error) {
	if len(x) < minTraceSamples {
		return nil, fmt.Errorf("%w: teager trace needs at least %d samples, have %d",
			mathutil.ErrInsufficientSamples, minTraceSamples, len(x))
	}

	trace := make([]float64, len(x)-2)
	for i := range trace {
		trace[i] = teagerAt(x, i+1)
	}
	return trace, nil
}

// TeagerStats folds the operator over the interior of x into a Welford
// accumulator without materializing the trace.
func TeagerStats(x []int16) (mean, variance float64, err error) {
	var acc mathutil.Accumulator
	for n := 1; n < len(x)-1; n++ {
		acc.Update(teagerAt(x, n))
	}
	mean, variance, err = acc.Finalize()
	if err != nil {
		return 0, 0, fmt.Errorf("teager stats over %d samples: %w", len(x), err)
	}
	return mean, variance, nil
}

// SqrtTrace returns the square root of each trace value, which is
// proportional to instantaneous frequency. Negative values, produced around
// splices and amplitude changes, map to zero.
func SqrtTrace(trace []float64) []float64 {
	out := make([]float64, len(trace))
	for i, v := range trace {
		if v > 0 {
			out[i] = math.Sqrt(v)
		}
	}
	return out
}

// Glitches returns the indices whose magnitude deviates upward from the
// reference level by more than threshold, relative. The reference level is
// the mean of the first window values.
func Glitches(trace []float64, window int, threshold float64) ([]int, error) {
	if window < 1 || len(trace) < window {
		return nil, fmt.Errorf("%w: glitch reference needs %d values, have %d",
			mathutil.ErrInsufficientSamples, window, len(trace))
	}

	ref := simdops.Float64Ops().Sum(trace[:window]) / float64(window)
	if ref <= 0 {
		return nil, fmt.Errorf("%w: glitch reference level %g is not positive",
			mathutil.ErrDegenerateInput, ref)
	}

	var glitches []int
	for i, v := range trace {
		if (math.Abs(v)-ref)/ref > threshold {
			glitches = append(glitches, i)
		}
	}
	return glitches, nil
}
