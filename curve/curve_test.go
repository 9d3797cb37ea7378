package curve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/scratchbook/curve"
)

// TestCurve_Endpoints checks that every moving curve maps 0→0 and 1→1.
func TestCurve_Endpoints(t *testing.T) {
	for _, c := range []*curve.Curve{curve.S, curve.Ex, curve.Log} {
		t.Run(c.Name(), func(t *testing.T) {
			assert.InDelta(t, 0, c.Forward(0), 1e-9)
			assert.InDelta(t, 1, c.Forward(1), 1e-9)
		})
	}
}

// TestCurve_Views verifies the four derived orientations.
func TestCurve_Views(t *testing.T) {
	c := curve.Ex
	x := 0.3
	assert.InDelta(t, 1-c.Forward(x), c.Backward(x), 1e-12)
	assert.InDelta(t, c.Forward(1-x), c.Reverse(x), 1e-12)
	assert.InDelta(t, 1-c.Forward(1-x), c.Inverse(x), 1e-12)

	assert.InDelta(t, c.Inverse(x), c.View(true, true)(x), 1e-12)
	assert.InDelta(t, c.Backward(x), c.View(false, true)(x), 1e-12)
	assert.InDelta(t, c.Reverse(x), c.View(true, false)(x), 1e-12)
	assert.InDelta(t, c.Forward(x), c.View(false, false)(x), 1e-12)
}

// TestCurve_Monotonic samples each moving curve and checks it never decreases.
func TestCurve_Monotonic(t *testing.T) {
	for _, c := range []*curve.Curve{curve.S, curve.Ex, curve.Log} {
		ys := sample(c.Forward, 50)
		for i := 1; i < len(ys); i++ {
			assert.GreaterOrEqual(t, ys[i], ys[i-1], "%s at %d", c.Name(), i)
		}
	}
}

// TestFlat never moves.
func TestFlat(t *testing.T) {
	assert.Equal(t, "L", curve.Flat.Name())
	for _, y := range sample(curve.Flat.Forward, 10) {
		assert.Equal(t, 0.0, y)
	}
}

// sample evaluates fn at n+1 evenly spaced points including both ends.
func sample(fn curve.Func, n int) []float64 {
	out := make([]float64, n+1)
	for i := range out {
		out[i] = fn(float64(i) / float64(n))
	}
	return out
}
