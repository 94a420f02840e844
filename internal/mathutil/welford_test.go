package mathutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

// twoPass computes mean and Bessel-corrected variance the naive way.
func twoPass(values []float64) (mean, variance float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return mean, variance / float64(len(values)-1)
}

func TestAccumulator_MatchesTwoPass(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	tests := []struct {
		name   string
		values []float64
	}{
		{"two values", []float64{1, 3}},
		{"ramp", []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"negative", []float64{-5, -2.5, 0, 2.5, 5}},
		{"gaussian", func() []float64 {
			v := make([]float64, 10000)
			for i := range v {
				v[i] = rng.NormFloat64() * 1000
			}
			return v
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantMean, wantVar := twoPass(tt.values)
			mean, variance, err := MeanVariance(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, wantMean, mean, 1e-9*math.Max(1, math.Abs(wantMean)))
			assert.InDelta(t, wantVar, variance, 1e-9*math.Max(1, wantVar))
		})
	}
}

func TestAccumulator_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	values := make([]float64, 5000)
	for i := range values {
		values[i] = 1e9 + rng.Float64()*1e6
	}

	wantMean, wantVar := stat.MeanVariance(values, nil)
	mean, variance, err := MeanVariance(values)
	require.NoError(t, err)
	assert.InEpsilon(t, wantMean, mean, 1e-12)
	assert.InEpsilon(t, wantVar, variance, 1e-6)
}

// Large offset with small spread: the single-pass sum-of-squares form loses
// every significant digit here.
func TestAccumulator_StableForLongOffsetSequences(t *testing.T) {
	const n = 2_000_000
	var (
		acc        Accumulator
		sum, sumSq float64
	)
	for i := range n {
		v := 1e9 + float64(i%2)
		acc.Update(v)
		sum += v
		sumSq += v * v
	}
	mean, variance, err := acc.Finalize()
	require.NoError(t, err)
	assert.InDelta(t, 1e9+0.5, mean, 1e-6)
	assert.InDelta(t, 0.25*n/(n-1), variance, 1e-6)
	assert.Equal(t, n, acc.Count())

	naive := (sumSq - sum*sum/n) / (n - 1)
	assert.Greater(t, math.Abs(naive-variance), 1.0, "one-pass formula should have lost precision")
}

func TestAccumulator_InsufficientSamples(t *testing.T) {
	var acc Accumulator
	_, _, err := acc.Finalize()
	require.ErrorIs(t, err, ErrInsufficientSamples)

	acc.Update(42)
	_, _, err = acc.Finalize()
	require.ErrorIs(t, err, ErrInsufficientSamples)
	assert.InDelta(t, 42.0, acc.Mean(), 0)

	acc.Update(44)
	mean, variance, err := acc.Finalize()
	require.NoError(t, err)
	assert.InDelta(t, 43.0, mean, 1e-12)
	assert.InDelta(t, 2.0, variance, 1e-12)
}

func TestAccumulator_Reset(t *testing.T) {
	var acc Accumulator
	acc.Update(1)
	acc.Update(2)
	acc.Reset()
	assert.Equal(t, 0, acc.Count())
	assert.Zero(t, acc.Mean())
}
