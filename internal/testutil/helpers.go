// Package testutil provides reusable test helpers for the time-scale engine
// and its verification harness.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	LengthTolerance  = 0.01
)

// Sine returns frames of a sinusoid at freq Hz quantized to int16, repeated
// across channels.
func Sine(frames, channels int, freq, amplitude float64, sampleRate int) []int16 {
	out := make([]int16, frames*channels)
	for i := range frames {
		v := int16(math.Round(amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))))
		for c := range channels {
			out[i*channels+c] = v
		}
	}
	return out
}

// Interleave duplicates a mono signal into channels identical channels.
func Interleave(mono []int16, channels int) []int16 {
	out := make([]int16, len(mono)*channels)
	for i, v := range mono {
		for c := range channels {
			out[i*channels+c] = v
		}
	}
	return out
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertChannelsMatch verifies that every channel of an interleaved stereo
// or multichannel signal equals the mono reference frame by frame.
func AssertChannelsMatch(t *testing.T, mono, interleaved []int16, channels int) bool {
	t.Helper()
	if !assert.Len(t, interleaved, len(mono)*channels, "frame count mismatch") {
		return false
	}
	for i, want := range mono {
		for c := range channels {
			if got := interleaved[i*channels+c]; got != want {
				return assert.Fail(t, "channel mismatch",
					"frame %d channel %d: got %d, want %d", i, c, got, want)
			}
		}
	}
	return true
}
