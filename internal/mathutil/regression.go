package mathutil

import (
	"fmt"

	"github.com/tphakala/go-audio-tsm/internal/simdops"
)

// Slope returns the least-squares slope of y against its index 0..n-1.
func Slope(y []float64) (float64, error) {
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	return SlopeXY(x, y)
}

// SlopeXY returns the ordinary least-squares slope of y against x using the
// closed form (n*Sxy - Sx*Sy) / (n*Sxx - Sx*Sx).
func SlopeXY(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: x has %d values, y has %d", ErrDegenerateInput, len(x), len(y))
	}
	n := len(x)
	if n < minRegressionPoints {
		return 0, fmt.Errorf("%w: slope needs at least %d points, have %d",
			ErrInsufficientSamples, minRegressionPoints, n)
	}

	ops := simdops.Float64Ops()
	sumX := ops.Sum(x)
	sumY := ops.Sum(y)
	sumXY := ops.DotProductUnsafe(x, y)
	sumX2 := ops.DotProductUnsafe(x, x)

	nf := float64(n)
	denom := nf*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, fmt.Errorf("%w: all %d x values are equal", ErrDegenerateInput, n)
	}
	return (nf*sumXY - sumX*sumY) / denom, nil
}
