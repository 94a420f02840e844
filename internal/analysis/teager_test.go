package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/tphakala/go-audio-tsm/internal/mathutil"
	"github.com/tphakala/go-audio-tsm/internal/testutil"
)

// cycle returns one period of a sinusoid truncated to int16.
func cycle(period int, amplitude float64) []int16 {
	out := make([]int16, period)
	for i := range out {
		out[i] = int16(amplitude * math.Sin(float64(i)*2*math.Pi/float64(period)))
	}
	return out
}

func repeat(c []int16, times int) []int16 {
	out := make([]int16, 0, len(c)*times)
	for range times {
		out = append(out, c...)
	}
	return out
}

func TestTeagerTrace_Values(t *testing.T) {
	trace, err := TeagerTrace([]int16{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, trace)
}

func TestTeagerTrace_DoesNotWrap(t *testing.T) {
	// Largest magnitude the operator can reach for 16-bit input.
	trace, err := TeagerTrace([]int16{32767, -32768, -32767})
	require.NoError(t, err)
	require.Len(t, trace, 1)
	assert.InDelta(t, 2147418113.0, trace[0], 0)
}

func TestTeagerTrace_TooShort(t *testing.T) {
	for _, x := range [][]int16{nil, {1}, {1, 2}} {
		_, err := TeagerTrace(x)
		require.ErrorIs(t, err, mathutil.ErrInsufficientSamples)
	}
}

func TestTeagerTrace_ConstantForSinusoid(t *testing.T) {
	const (
		rate      = 16000
		freq      = 500.0
		amplitude = 30000.0
	)
	x := testutil.Sine(4000, 1, freq, amplitude, rate)
	trace, err := TeagerTrace(x)
	require.NoError(t, err)
	testutil.AssertNoNaNOrInf(t, trace)

	omega := 2 * math.Pi * freq / rate
	want := amplitude * amplitude * math.Sin(omega) * math.Sin(omega)
	mean, _, err := mathutil.MeanVariance(trace)
	require.NoError(t, err)
	testutil.AssertRelativeError(t, want, mean, 0.01)
}

func TestTeagerStats_MatchesTrace(t *testing.T) {
	x := repeat(cycle(220, 32000), 20)
	trace, err := TeagerTrace(x)
	require.NoError(t, err)

	wantMean, wantVar := stat.MeanVariance(trace, nil)
	mean, variance, err := TeagerStats(x)
	require.NoError(t, err)
	assert.InEpsilon(t, wantMean, mean, 1e-9)
	assert.InEpsilon(t, wantVar, variance, 1e-6)
}

func TestTeagerStats_TooShort(t *testing.T) {
	_, _, err := TeagerStats([]int16{1, 2, 3})
	require.ErrorIs(t, err, mathutil.ErrInsufficientSamples)
}

// Any window spanning whole periods of a stationary sinusoid has the same
// operator statistics.
func TestTeagerStats_Stationary(t *testing.T) {
	const period = 220
	x := repeat(cycle(period, 32000), 100)
	windowLen := 10*period + 2

	refMean, refVar, err := TeagerStats(x[:windowLen])
	require.NoError(t, err)

	for _, start := range []int{37, 1000, 5503, len(x) - windowLen} {
		mean, variance, err := TeagerStats(x[start : start+windowLen])
		require.NoError(t, err)
		testutil.AssertRelativeError(t, refMean, mean, 0.01, "start %d", start)
		testutil.AssertRelativeError(t, refVar, variance, 0.02, "start %d", start)
	}
}

func TestSqrtTrace(t *testing.T) {
	assert.Equal(t, []float64{2, 0, 0, 3}, SqrtTrace([]float64{4, 0, -9, 9}))
}

func TestGlitches(t *testing.T) {
	trace := make([]float64, 300)
	for i := range trace {
		trace[i] = 100
	}
	trace[150] = 106
	trace[200] = 104
	trace[250] = -120

	glitches, err := Glitches(trace, 100, 0.05)
	require.NoError(t, err)
	assert.Equal(t, []int{150, 250}, glitches)
}

func TestGlitches_Errors(t *testing.T) {
	_, err := Glitches([]float64{1, 2}, 100, 0.05)
	require.ErrorIs(t, err, mathutil.ErrInsufficientSamples)

	_, err = Glitches(make([]float64, 200), 100, 0.05)
	require.ErrorIs(t, err, mathutil.ErrDegenerateInput)
}
