package analysis

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/tphakala/go-audio-tsm/internal/mathutil"
	"github.com/tphakala/go-audio-tsm/internal/simdops"
)

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin
// of the Hann-windowed spectrum of x. Resolution is sampleRate/len(x).
func DominantFrequency(x []int16, sampleRate int) (float64, error) {
	if len(x) < minSpectrumSamples {
		return 0, fmt.Errorf("%w: spectrum needs at least %d samples, have %d",
			mathutil.ErrInsufficientSamples, minSpectrumSamples, len(x))
	}
	if sampleRate <= 0 {
		return 0, fmt.Errorf("%w: sample rate %d", mathutil.ErrDegenerateInput, sampleRate)
	}

	seq := make([]float64, len(x))
	for i, v := range x {
		seq[i] = float64(v)
	}
	simdops.Float64Ops().Scale(seq, seq, int16Scale)
	window.Hann(seq)

	fft := fourier.NewFFT(len(seq))
	coeffs := fft.Coefficients(nil, seq)

	best := 0
	var bestMag float64
	for k := 1; k < len(coeffs); k++ {
		if mag := cmplx.Abs(coeffs[k]); mag > bestMag {
			bestMag = mag
			best = k
		}
	}
	if best == 0 {
		return 0, fmt.Errorf("%w: spectrum has no energy above DC", mathutil.ErrDegenerateInput)
	}
	return fft.Freq(best) * float64(sampleRate), nil
}
