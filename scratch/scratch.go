// Package scratch implements scratch elements and the algebra over sequences
// of them. All operators are pure and return new values.
package scratch

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty    = errors.New("scratch must contain at least one element")
	ErrRepeat   = errors.New("a scratch can only be multiplied by an integer > 0")
	ErrRotation = errors.New("phase shifting requires an integer between 0 and the number of elements")
	ErrIndex    = errors.New("index out of range")
	ErrScale    = errors.New("scale must be greater than 0")
)

// MaxElements bounds the number of elements a repeat may produce.
const MaxElements = 1 << 16

// Scratch is an ordered, non-empty sequence of elements.
type Scratch struct {
	elements []Element
}

// New builds a scratch from elements.
func New(elements ...Element) (Scratch, error) {
	if len(elements) == 0 {
		return Scratch{}, ErrEmpty
	}
	return Scratch{elements: append([]Element(nil), elements...)}, nil
}

// Of wraps a single element.
func Of(e Element) Scratch {
	return Scratch{elements: []Element{e}}
}

// Elements returns a copy of the element list.
func (s Scratch) Elements() []Element {
	return append([]Element(nil), s.elements...)
}

// Len is the number of elements.
func (s Scratch) Len() int { return len(s.elements) }

// At returns element i.
func (s Scratch) At(i int) Element { return s.elements[i] }

// Length is the summed element length.
func (s Scratch) Length() float64 {
	var total float64
	for _, e := range s.elements {
		total += e.length
	}
	return total
}

// Height is the highest point reached by any element.
func (s Scratch) Height() float64 {
	var h float64
	for i, e := range s.elements {
		if top := e.height + e.lift; i == 0 || top > h {
			h = top
		}
	}
	return h
}

// Lift is the lowest element lift.
func (s Scratch) Lift() float64 {
	var l float64
	for i, e := range s.elements {
		if i == 0 || e.lift < l {
			l = e.lift
		}
	}
	return l
}

// Concat appends other after s.
func (s Scratch) Concat(other Scratch) Scratch {
	out := make([]Element, 0, len(s.elements)+len(other.elements))
	out = append(out, s.elements...)
	out = append(out, other.elements...)
	return Scratch{elements: out}
}

// Repeat concatenates s with itself n times.
func (s Scratch) Repeat(n int) (Scratch, error) {
	if n < 1 {
		return Scratch{}, fmt.Errorf("%w (got %d)", ErrRepeat, n)
	}
	if n > MaxElements/len(s.elements) {
		return Scratch{}, fmt.Errorf("%w: %d copies of %d elements exceeds %d", ErrRepeat, n, len(s.elements), MaxElements)
	}
	out := make([]Element, 0, len(s.elements)*n)
	for range n {
		out = append(out, s.elements...)
	}
	return Scratch{elements: out}, nil
}

// Rotate moves the first k elements to the end.
func (s Scratch) Rotate(k int) (Scratch, error) {
	if k < 0 || k > len(s.elements) {
		return Scratch{}, fmt.Errorf("%w, here: %d (got %d)", ErrRotation, len(s.elements), k)
	}
	out := make([]Element, 0, len(s.elements))
	out = append(out, s.elements[k:]...)
	out = append(out, s.elements[:k]...)
	return Scratch{elements: out}, nil
}

func (s Scratch) normalize(i int) int {
	if i < 0 {
		i += len(s.elements)
	}
	return i
}

// Index returns element i as a scratch. Negative indices count from the end.
func (s Scratch) Index(i int) (Scratch, error) {
	j := s.normalize(i)
	if j < 0 || j >= len(s.elements) {
		return Scratch{}, fmt.Errorf("%w: [%d] of %d elements", ErrIndex, i, len(s.elements))
	}
	return Of(s.elements[j]), nil
}

// Slice returns elements [from:to]. Nil bounds default to the ends, negative
// bounds count from the end, and out-of-range bounds are clamped. An empty
// result is an error.
func (s Scratch) Slice(from, to *int) (Scratch, error) {
	n := len(s.elements)
	lo, hi := 0, n
	if from != nil {
		lo = clamp(s.normalize(*from), 0, n)
	}
	if to != nil {
		hi = clamp(s.normalize(*to), 0, n)
	}
	if lo >= hi {
		return Scratch{}, fmt.Errorf("%w: [%s:%s] selects no elements", ErrIndex, bound(from), bound(to))
	}
	return Scratch{elements: append([]Element(nil), s.elements[lo:hi]...)}, nil
}

func bound(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// ScaleLength rescales the scratch to total length n, keeping proportions.
func (s Scratch) ScaleLength(n float64) (Scratch, error) {
	if n <= 0 {
		return Scratch{}, fmt.Errorf("length: %w (got %g)", ErrScale, n)
	}
	total := s.Length()
	if total <= 0 {
		return Scratch{}, fmt.Errorf("length: %w (scratch length is %g)", ErrScale, total)
	}
	out := make([]Element, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.WithLength(e.length / total * n)
	}
	return Scratch{elements: out}, nil
}

// ScaleHeight rescales the scratch to height n; lifts scale along.
func (s Scratch) ScaleHeight(n float64) (Scratch, error) {
	if n <= 0 {
		return Scratch{}, fmt.Errorf("height: %w (got %g)", ErrScale, n)
	}
	h := s.Height()
	if h <= 0 {
		return Scratch{}, fmt.Errorf("height: %w (scratch height is %g)", ErrScale, h)
	}
	out := make([]Element, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.WithHeight(e.height / h * n).WithLift(e.lift / h * n)
	}
	return Scratch{elements: out}, nil
}

// Shift lifts every element by n.
func (s Scratch) Shift(n float64) Scratch {
	out := make([]Element, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.WithLift(e.lift + n)
	}
	return Scratch{elements: out}
}

// FlipY flips the scratch along the y-axis within its own vertical span.
func (s Scratch) FlipY() Scratch {
	lift, height := s.Lift(), s.Height()
	out := make([]Element, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.WithLift(lift + (height - (e.height + e.lift))).FlipY()
	}
	return Scratch{elements: out}
}

// FlipX flips the scratch along the x-axis: element order is reversed and
// every element is mirrored.
func (s Scratch) FlipX() Scratch {
	n := len(s.elements)
	out := make([]Element, n)
	for i, e := range s.elements {
		out[n-1-i] = e.FlipX()
	}
	return Scratch{elements: out}
}

// Equal reports element-wise structural equality.
func (s Scratch) Equal(o Scratch) bool {
	if len(s.elements) != len(o.elements) {
		return false
	}
	for i := range s.elements {
		if !s.elements[i].Equal(o.elements[i]) {
			return false
		}
	}
	return true
}
