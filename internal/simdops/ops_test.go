package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat64Ops_MatchNaive(t *testing.T) {
	ops := Float64Ops()
	a := make([]float64, 1037)
	b := make([]float64, len(a))
	for i := range a {
		a[i] = float64(i%97) - 48
		b[i] = float64(i) * 0.5
	}

	var sum, dot float64
	for i := range a {
		sum += a[i]
		dot += a[i] * b[i]
	}

	assert.InDelta(t, sum, ops.Sum(a), 1e-9)
	assert.InDelta(t, dot, ops.DotProductUnsafe(a, b), 1e-6)

	dst := make([]float64, len(a))
	ops.Scale(dst, a, 0.25)
	for i := range a {
		assert.InDelta(t, a[i]*0.25, dst[i], 1e-12)
	}
}

func TestFloat64Ops_SharedInstance(t *testing.T) {
	assert.Same(t, Float64Ops(), Float64Ops())
}

// BenchmarkTraceDotProduct measures a dot product over a Teager-sized trace.
func BenchmarkTraceDotProduct(b *testing.B) {
	ops := Float64Ops()
	x := make([]float64, 7350)
	y := make([]float64, len(x))
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i) * 0.02
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(x, y)
	}
}
