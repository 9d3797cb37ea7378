package scratch

import (
	"github.com/blackwell-systems/scratchbook/curve"
)

// Tone says whether an element is heard.
type Tone int

const (
	Audible Tone = iota
	Silent
)

func (t Tone) String() string {
	if t == Silent {
		return "silent"
	}
	return "audible"
}

// Element is one curve instance with its clicks, orientation and placement.
// Elements are values; every operator returns a new one.
type Element struct {
	curve  *curve.Curve
	clicks []Click
	xflip  bool
	yflip  bool
	length float64
	height float64
	lift   float64
	tone   Tone
}

// NewElement returns a unit element (length 1, height 1, lift 0) that is not
// flipped.
func NewElement(c *curve.Curve, tone Tone, clicks ...Click) Element {
	return Element{
		curve:  c,
		clicks: append([]Click(nil), clicks...),
		length: 1,
		height: 1,
		tone:   tone,
	}
}

func (e Element) Curve() *curve.Curve { return e.curve }
func (e Element) XFlip() bool { return e.xflip }
func (e Element) YFlip() bool { return e.yflip }
func (e Element) Length() float64 { return e.length }
func (e Element) Height() float64 { return e.height }
func (e Element) Lift() float64 { return e.lift }
func (e Element) Tone() Tone { return e.tone }

// Clicks returns a copy of the click positions.
func (e Element) Clicks() []Click {
	return append([]Click(nil), e.clicks...)
}

// StartsOnClick reports whether the element opens with a click.
func (e Element) StartsOnClick() bool { return e.has(Start) }

// EndsOnClick reports whether the element closes with a click.
func (e Element) EndsOnClick() bool { return e.has(End) }

func (e Element) has(c Click) bool {
	for _, x := range e.clicks {
		if x == c {
			return true
		}
	}
	return false
}

// Interior returns the clicks strictly between 0 and 1.
func (e Element) Interior() []Click {
	var out []Click
	for _, c := range e.clicks {
		if !c.IsBoundary() {
			out = append(out, c)
		}
	}
	return out
}

// InteriorCount is len(Interior()).
func (e Element) InteriorCount() int {
	n := 0
	for _, c := range e.clicks {
		if !c.IsBoundary() {
			n++
		}
	}
	return n
}

// Forward reports whether the element plays the sample forwards.
func (e Element) Forward() bool { return e.xflip == e.yflip }

// YPos is the vertical placement of an element.
type YPos struct {
	Lift   float64
	Height float64
}

const posEpsilon = 1e-9

// Equal compares two placements with a small tolerance.
func (p YPos) Equal(o YPos) bool {
	return abs(p.Lift-o.Lift) < posEpsilon && abs(p.Height-o.Height) < posEpsilon
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// YPos returns the vertical placement.
func (e Element) YPos() YPos { return YPos{Lift: e.lift, Height: e.height} }

// WithLength sets the element length.
func (e Element) WithLength(n float64) Element {
	e.clicks = e.Clicks()
	e.length = n
	return e
}

// WithHeight sets the element height.
func (e Element) WithHeight(n float64) Element {
	e.clicks = e.Clicks()
	e.height = n
	return e
}

// WithLift sets the element lift.
func (e Element) WithLift(n float64) Element {
	e.clicks = e.Clicks()
	e.lift = n
	return e
}

// FlipY flips the element along the y-axis.
func (e Element) FlipY() Element {
	e.clicks = e.Clicks()
	e.yflip = !e.yflip
	return e
}

// FlipX flips the element along the x-axis; clicks are mirrored and reversed.
func (e Element) FlipX() Element {
	clicks := make([]Click, len(e.clicks))
	for i, c := range e.clicks {
		clicks[len(e.clicks)-1-i] = c.Complement()
	}
	e.clicks = clicks
	e.xflip = !e.xflip
	return e
}

// Equal reports structural equality. Floats are compared exactly.
func (e Element) Equal(o Element) bool {
	return e.curve == o.curve &&
		ClicksEqual(e.clicks, o.clicks) &&
		e.xflip == o.xflip &&
		e.yflip == o.yflip &&
		e.length == o.length &&
		e.height == o.height &&
		e.lift == o.lift &&
		e.tone == o.tone
}
