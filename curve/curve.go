// Package curve holds the closed family of scratch curves. Each curve wraps one
// base function f on [0,1] and exposes the four orientations an element can
// take when it is flipped along either axis.
package curve

import "math"

// Func is a shape function on [0,1].
type Func func(x float64) float64

// Curve is an immutable shape descriptor. Curves are compared by identity.
type Curve struct {
	name string
	f    Func
}

func newCurve(name string, f Func) *Curve {
	return &Curve{name: name, f: f}
}

// Name returns the short name used in formula text and classification tags.
func (c *Curve) Name() string { return c.name }

// Forward is f(x).
func (c *Curve) Forward(x float64) float64 { return c.f(x) }

// Backward is 1 - f(x).
func (c *Curve) Backward(x float64) float64 { return 1 - c.f(x) }

// Reverse is f(1 - x).
func (c *Curve) Reverse(x float64) float64 { return c.f(1 - x) }

// Inverse is 1 - f(1 - x).
func (c *Curve) Inverse(x float64) float64 { return 1 - c.f(1-x) }

// View returns the orientation selected by the two flip flags.
func (c *Curve) View(xflip, yflip bool) Func {
	switch {
	case yflip && xflip:
		return c.Inverse
	case yflip:
		return c.Backward
	case xflip:
		return c.Reverse
	}
	return c.Forward
}

func (c *Curve) String() string { return c.name }

const (
	exScaler  = 10
	logScaler = 100
)

var (
	// Flat is the hold curve: the record does not move.
	Flat = newCurve("L", func(float64) float64 { return 0 })

	// S is the default scratch shape.
	S = newCurve("S", func(x float64) float64 {
		return (1 - math.Cos(x*math.Pi)) / 2
	})

	// Ex starts slow and accelerates.
	Ex = newCurve("Ex", func(x float64) float64 {
		return (math.Exp(exScaler*x) - 1) / (math.Exp(exScaler) - 1)
	})

	// Log starts fast and decelerates.
	Log = newCurve("Log", func(x float64) float64 {
		return math.Log(logScaler*x+1) / math.Log(logScaler+1)
	})
)
