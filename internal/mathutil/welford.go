// Package mathutil provides the numeric estimators used to judge time-scaled
// audio: an online mean/variance accumulator and an ordinary least-squares
// slope.
package mathutil

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientSamples indicates an estimator was finalized with too few values.
	ErrInsufficientSamples = errors.New("insufficient samples")

	// ErrDegenerateInput indicates input for which the estimator is undefined,
	// such as mismatched lengths or constant x coordinates.
	ErrDegenerateInput = errors.New("degenerate input")
)

// Accumulator computes a streaming mean and variance with Welford's algorithm.
// The zero value is an empty accumulator ready for use.
//
// The online form avoids the cancellation of the sum-of-squares formula, which
// matters for traces with millions of values of magnitude ~1e9.
type Accumulator struct {
	count int
	mean  float64
	m2    float64
}

// Update folds one value into the accumulator.
func (a *Accumulator) Update(value float64) {
	a.count++
	delta := value - a.mean
	a.mean += delta / float64(a.count)
	delta2 := value - a.mean
	a.m2 += delta * delta2
}

// Count returns the number of values folded in so far.
func (a *Accumulator) Count() int {
	return a.count
}

// Mean returns the running mean. It is zero for an empty accumulator.
func (a *Accumulator) Mean() float64 {
	return a.mean
}

// Finalize returns the mean and the Bessel-corrected variance M2/(count-1).
// It fails with ErrInsufficientSamples when fewer than two values were seen.
func (a *Accumulator) Finalize() (mean, variance float64, err error) {
	if a.count < minVarianceCount {
		return 0, 0, fmt.Errorf("%w: variance needs at least %d values, have %d",
			ErrInsufficientSamples, minVarianceCount, a.count)
	}
	return a.mean, a.m2 / float64(a.count-1), nil
}

// Reset returns the accumulator to its empty state.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// MeanVariance runs values through a fresh Accumulator.
func MeanVariance(values []float64) (mean, variance float64, err error) {
	var acc Accumulator
	for _, v := range values {
		acc.Update(v)
	}
	return acc.Finalize()
}
